package http_server

import (
	"net"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// LocalOnly hides the wrapped routes from anything but the local host.
func LocalOnly(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if !IsLocal(c.Request()) {
			zerolog.Ctx(c.Request().Context()).Warn().Str("remote_addr", c.Request().RemoteAddr).Msg("rejected non-local seed request")
			return echo.ErrNotFound
		}
		return next(c)
	}
}

// IsLocal reports whether r came from a loopback address or from the address
// the server accepted it on. Forwarding headers are ignored.
func IsLocal(r *http.Request) bool {
	remote := hostIP(r.RemoteAddr)
	if remote == nil {
		return false
	}
	if remote.IsLoopback() {
		return true
	}
	if local, ok := r.Context().Value(http.LocalAddrContextKey).(net.Addr); ok {
		if ip := hostIP(local.String()); ip != nil && ip.Equal(remote) {
			return true
		}
	}
	return false
}

func hostIP(addr string) net.IP {
	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		host = addr
	}
	return net.ParseIP(host)
}
