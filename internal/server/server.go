// Package server serves the cipher tools over HTTP: a static front end and a JSON API.
package server

import (
	"bytes"
	"cipherbox/internal/ctxlog"
	"context"
	"crypto/sha256"
	"crypto/tls"
	"encoding/base64"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"runtime"
	"strings"
	"time"
)

type Server struct {
	addr            string
	handler         http.Handler
	shutdownTimeout time.Duration
	tls             *tlsLoader
	stop            func()
}

func New(config Config) *Server {
	if config.Port == 0 {
		panic("server: port is required")
	}
	if config.AntidosBuckets == 0 {
		panic("server: antidosBuckets is required")
	}
	if config.AntidosPeriod == 0 {
		panic("server: antidosPeriod is required")
	}
	if config.AntidosMaxConcurrent == 0 {
		panic("server: antidosMaxConcurrent is required")
	}
	if config.DataDir == "" {
		panic("server: dataDir is required")
	}
	if config.ShutdownTimeout == 0 {
		panic("server: shutdownTimeout is required")
	}
	if config.SearchTimeout == 0 {
		panic("server: searchTimeout is required")
	}
	if config.MaxCiphertext == 0 {
		panic("server: maxCiphertext is required")
	}
	if config.MaxShifts == 0 {
		panic("server: maxShifts is required")
	}
	if (config.TLSCertFile == "") != (config.TLSKeyFile == "") {
		panic("server: tlsCertFile and tlsKeyFile must be set together")
	}
	if config.SearchWorkers == 0 {
		config.SearchWorkers = runtime.NumCPU()
	}

	fsys := os.DirFS(filepath.FromSlash(config.DataDir))

	page := func(status int, file string) http.Handler {
		content, ct := dataFile(fsys, file)
		return pageHandler(status, content, ct)
	}
	notFound := page(http.StatusNotFound, "static/404.html")
	tooManyRequests := page(http.StatusTooManyRequests, "static/429.html")
	internalServerError := page(http.StatusInternalServerError, "static/500.html")

	anti := newAntidos(config.AntidosBuckets, config.AntidosPeriod)
	limiter := newSearchLimiter(config.AntidosBuckets, config.AntidosMaxConcurrent, tooManyRequests)

	mux := http.NewServeMux()

	slog.Info("registering handler", "path", "/", "src", "static/404.html")
	mux.Handle("GET /", anti.middleware(notFound))

	registerStatic(mux, fsys, anti)

	rv := &reverser{
		workers: config.SearchWorkers,
		timeout: config.SearchTimeout,
		maxLen:  config.MaxCiphertext,
	}

	for _, route := range []struct {
		pattern string
		handler http.Handler
	}{
		{"POST /api/numbers", jsonHandler(encodeNumbers)},
		{"POST /api/numbers/reverse", limiter.middleware(jsonHandler(rv.reverse))},
		{"POST /api/grid", jsonHandler(rotateGrid)},
		{"POST /api/shift", jsonHandler(shifter(config.MaxShifts))},
		{"POST /api/vigenere", jsonHandler(applyVigenere)},
		{"POST /api/decrypt", jsonHandler(decrypt)},
		{"POST /api/compress", jsonHandler(compress)},
		{"POST /api/decompress", jsonHandler(decompress)},
	} {
		slog.Info("registering handler", "path", route.pattern)
		mux.Handle(route.pattern, anti.middleware(route.handler))
	}

	if config.AdminKey != "" {
		adm := newAdmin(config.AdminKey, notFound)

		slog.Info("registering admin handlers", "path", "/admin/solutions")
		mux.Handle("GET /admin/solutions", adm.middleware(http.HandlerFunc(listSolutions)))
		mux.Handle("DELETE /admin/solutions", adm.middleware(http.HandlerFunc(clearSolutions)))
		mux.Handle("DELETE /admin/solutions/{ciphertext}", adm.middleware(http.HandlerFunc(deleteSolution)))
	}

	handler := http.Handler(mux)
	handler = recoverMiddleware(internalServerError, handler)
	handler = robotsMiddleware(handler)
	handler = hostMiddleware(config.Host, handler)
	handler = logMiddleware(handler)

	var tl *tlsLoader
	if config.TLSCertFile != "" {
		if config.TLSReloadInterval == 0 {
			panic("server: tlsReloadInterval is required with tls")
		}
		tl = newTLSLoader(config.TLSCertFile, config.TLSKeyFile, config.TLSReloadInterval)
	}

	return &Server{
		addr:            fmt.Sprintf("0.0.0.0:%d", config.Port),
		handler:         handler,
		shutdownTimeout: config.ShutdownTimeout,
		tls:             tl,
		stop:            anti.stop,
	}
}

// registerStatic serves static/index.html at the root and every other static
// file under a name hashed from its path, rewriting references in the index.
func registerStatic(mux *http.ServeMux, fsys fs.FS, anti *antidos) {
	const staticDir = "static"

	extMap := map[string]string{}
	err := fs.WalkDir(fsys, staticDir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		name := d.Name()
		if p == path.Join(staticDir, "index.html") {
			return nil
		}

		subPath, ok := strings.CutPrefix(p, staticDir+"/")
		if !ok {
			return fmt.Errorf("%q is not a subpath of %q", p, staticDir+"/")
		}

		h := sha256.New()
		h.Write([]byte(p))
		ep := "/" + base64.RawURLEncoding.EncodeToString(h.Sum(nil)) + path.Ext(name)

		slog.Info("registering handler", "path", ep, "src", p)
		mux.Handle("GET "+ep, anti.middleware(cachedHandler(dataFile(fsys, p))))

		extMap[subPath] = ep

		return nil
	})
	if err != nil {
		panic(fmt.Errorf("server: walk static directory: %w", err))
	}

	index := path.Join(staticDir, "index.html")
	content, ct := dataFile(fsys, index)

	for orig, new := range extMap {
		content = bytes.ReplaceAll(content, []byte(orig), []byte(new))
	}

	slog.Info("registering handler", "path", "/{$}", "src", index)
	mux.Handle("GET /{$}", anti.middleware(cachedHandler(content, ct)))
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}

func (s *Server) Run(ctx context.Context) error {
	defer s.stop()

	logger := ctxlog.Get(ctx)

	srv := &http.Server{
		Addr:        s.addr,
		Handler:     s.handler,
		BaseContext: func(net.Listener) context.Context { return ctx },
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if s.tls != nil {
		srv.TLSConfig = &tls.Config{GetCertificate: s.tls.getCertificate}
		go s.tls.reloadLoop(ctx)
	}

	serveErrCh := make(chan error, 1)
	go func() {
		defer cancel()
		logger.Info("server is running", "addr", s.addr, "tls", s.tls != nil)
		if s.tls != nil {
			serveErrCh <- srv.ListenAndServeTLS("", "")
		} else {
			serveErrCh <- srv.ListenAndServe()
		}
	}()

	<-ctx.Done()

	logger.Info("server is shutting down")

	stopCtx, stopCancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer stopCancel()
	shutdownErr := srv.Shutdown(stopCtx)

	if errors.Is(shutdownErr, context.DeadlineExceeded) {
		logger.Error("server shutdown timeout exceeded")
	} else if shutdownErr == nil {
		logger.Info("all clients closed successfully")
	}

	serveErr := <-serveErrCh
	if errors.Is(serveErr, http.ErrServerClosed) {
		serveErr = nil
	}

	return errors.Join(serveErr, shutdownErr)
}
