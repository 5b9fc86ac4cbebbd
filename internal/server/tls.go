package server

import (
	"cipherbox/internal/ctxlog"
	"context"
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"os"
	"sync/atomic"
	"time"
)

// expiryWarning is how long before expiry a reloaded certificate is logged as a warning.
const expiryWarning = 7 * 24 * time.Hour

// tlsLoader serves a certificate pair and picks up renewals written to disk.
type tlsLoader struct {
	certFile, keyFile string
	interval          time.Duration

	cert    atomic.Pointer[tls.Certificate]
	modTime time.Time
}

func newTLSLoader(certFile, keyFile string, interval time.Duration) *tlsLoader {
	l := &tlsLoader{
		certFile: certFile,
		keyFile:  keyFile,
		interval: interval,
	}
	if _, err := l.reload(); err != nil {
		panic(fmt.Errorf("server: %w", err))
	}
	return l
}

// changed returns the newest modification time of the pair and whether it
// differs from the one last loaded.
func (l *tlsLoader) changed() (time.Time, bool, error) {
	var newest time.Time
	for _, name := range []string{l.certFile, l.keyFile} {
		fi, err := os.Stat(name)
		if err != nil {
			return time.Time{}, false, fmt.Errorf("stat %q: %w", name, err)
		}
		if fi.ModTime().After(newest) {
			newest = fi.ModTime()
		}
	}
	return newest, !newest.Equal(l.modTime), nil
}

// reload loads the pair if either file changed and returns the leaf
// certificate in use, or nil when nothing changed.
func (l *tlsLoader) reload() (*x509.Certificate, error) {
	modTime, changed, err := l.changed()
	if err != nil {
		return nil, err
	}
	if !changed {
		return nil, nil
	}

	c, err := tls.LoadX509KeyPair(l.certFile, l.keyFile)
	if err != nil {
		return nil, fmt.Errorf("load tls cert %q: %w", l.certFile, err)
	}
	if c.Leaf == nil {
		if c.Leaf, err = x509.ParseCertificate(c.Certificate[0]); err != nil {
			return nil, fmt.Errorf("parse tls cert %q: %w", l.certFile, err)
		}
	}

	l.cert.Store(&c)
	l.modTime = modTime
	return c.Leaf, nil
}

func (l *tlsLoader) getCertificate(*tls.ClientHelloInfo) (*tls.Certificate, error) {
	return l.cert.Load(), nil
}

func (l *tlsLoader) reloadLoop(ctx context.Context) {
	logger := ctxlog.Get(ctx).With("cert", l.certFile)

	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case <-ticker.C:
			leaf, err := l.reload()
			switch {
			case err != nil:
				logger.Error("failed to reload tls cert, keeping the previous one", "error", err)
			case leaf == nil:
			case time.Until(leaf.NotAfter) < expiryWarning:
				logger.Warn("reloaded tls cert expires soon", "notAfter", leaf.NotAfter)
			default:
				logger.Info("reloaded tls cert", "notAfter", leaf.NotAfter)
			}
		}
	}
}
