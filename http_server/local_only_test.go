package http_server

import (
	"context"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIsLocal(t *testing.T) {
	tests := []struct {
		name      string
		remote    string
		localAddr net.Addr
		expected  bool
	}{
		{name: "ipv4 loopback", remote: "127.0.0.1:5000", expected: true},
		{name: "ipv4 loopback range", remote: "127.0.0.2:5000", expected: true},
		{name: "ipv6 loopback", remote: "[::1]:5000", expected: true},
		{name: "remote", remote: "198.51.100.4:5000", expected: false},
		{name: "garbage", remote: "not-an-addr", expected: false},
		{
			name:      "same as server address",
			remote:    "10.0.0.5:5000",
			localAddr: &net.TCPAddr{IP: net.ParseIP("10.0.0.5"), Port: 8080},
			expected:  true,
		},
		{
			name:      "other host on server network",
			remote:    "10.0.0.6:5000",
			localAddr: &net.TCPAddr{IP: net.ParseIP("10.0.0.5"), Port: 8080},
			expected:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/seed/all", nil)
			req.RemoteAddr = tt.remote
			if tt.localAddr != nil {
				req = req.WithContext(context.WithValue(req.Context(), http.LocalAddrContextKey, tt.localAddr))
			}
			require.Equal(t, tt.expected, IsLocal(req))
		})
	}
}
