package http

import (
	"compress/gzip"
	"io"
	"net/http"
	"strings"
	"sync"
)

var gzipReaderPool = sync.Pool{
	New: func() any {
		return new(gzip.Reader)
	},
}

// withGzipBody transparently inflates request bodies sent with
// "Content-Encoding: gzip". Responses are never compressed.
func withGzipBody(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		if !strings.Contains(req.Header.Get("Content-Encoding"), "gzip") || req.Body == nil {
			next.ServeHTTP(w, req)
			return
		}

		gzipReader := gzipReaderPool.Get().(*gzip.Reader)
		if err := gzipReader.Reset(req.Body); err != nil {
			gzipReaderPool.Put(gzipReader)
			http.Error(w, "invalid gzip data", http.StatusBadRequest)
			return
		}

		req.Body = &pooledReadCloser{Reader: gzipReader, onClose: func() {
			gzipReader.Close()
			gzipReaderPool.Put(gzipReader)
		}}
		req.Header.Del("Content-Encoding")

		next.ServeHTTP(w, req)
		req.Body.Close()
	})
}

type pooledReadCloser struct {
	io.Reader
	onClose func()
	closed  bool
}

func (p *pooledReadCloser) Close() error {
	if !p.closed {
		p.closed = true
		p.onClose()
	}
	return nil
}
