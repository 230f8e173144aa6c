package rest

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
)

// NewRouter - mounts the handlers. Callers may add more routes (the frame
// feed lives on the same port).
func NewRouter(handlers Handlers) *mux.Router {
	router := mux.NewRouter()

	router.HandleFunc("/ping", handlers.PingHandler).Methods(http.MethodGet)
	router.HandleFunc("/game", handlers.FrameHandler).Methods(http.MethodGet)
	router.HandleFunc("/game/board", handlers.BoardHandler).Methods(http.MethodGet)
	router.HandleFunc("/games/{gameID}", handlers.SavedGameHandler).Methods(http.MethodGet)

	return router
}

func NewServer(port string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              ":" + port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       30 * time.Second,
	}
}
