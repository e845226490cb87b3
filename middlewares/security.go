package middlewares

import (
	"github.com/gin-gonic/gin"
)

// SecurityHeaders memasang header keamanan dasar. CSP mengizinkan origin
// sendiri, gambar data: (QR code QRIS), dan koneksi WebSocket dashboard.
func SecurityHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("X-Frame-Options", "DENY")
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("Content-Security-Policy", "default-src 'self'; img-src 'self' data:; connect-src 'self' ws: wss:")
		c.Header("Referrer-Policy", "strict-origin-when-cross-origin")
		c.Header("Strict-Transport-Security", "max-age=31536000; includeSubDomains")

		c.Next()
	}
}
