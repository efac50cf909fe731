package middleware

import (
	"bytes"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
	"golang.org/x/text/unicode/norm"
)

// NormalizeBody sanitizes request bodies to valid, NFC-normalized
// UTF-8. Devanagari input arrives from browsers and terminals in mixed
// composed/decomposed forms; normalizing here keeps script detection
// and vector search consistent. Invalid byte sequences are dropped
// rather than rejected.
func NormalizeBody() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Body == nil || c.Request.ContentLength == 0 {
			c.Next()
			return
		}

		bodyBytes, err := io.ReadAll(c.Request.Body)
		if err != nil {
			c.Next()
			return
		}
		c.Request.Body.Close()

		if len(bodyBytes) == 0 {
			c.Request.Body = io.NopCloser(bytes.NewReader(bodyBytes))
			c.Next()
			return
		}

		if !utf8.Valid(bodyBytes) {
			bodyBytes = []byte(strings.ToValidUTF8(string(bodyBytes), ""))
		}
		if !norm.NFC.IsNormal(bodyBytes) {
			bodyBytes = norm.NFC.Bytes(bodyBytes)
		}

		c.Request.Body = io.NopCloser(bytes.NewReader(bodyBytes))
		c.Request.ContentLength = int64(len(bodyBytes))
		c.Next()
	}
}
