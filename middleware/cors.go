// middleware/cors.go
package middleware

import (
	"net/http"

	"github.com/rs/cors"
)

// CORS ayrı origin'de çalışan arayüz için; cookie'ler taşınabilsin diye
// credentials açık.
func CORS(origins []string) func(http.Handler) http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins:   origins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
	})
	return c.Handler
}
