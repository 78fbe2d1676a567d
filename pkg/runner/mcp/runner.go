package mcp

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/server"

	"tableflip.dev/habits/pkg/report"
	"tableflip.dev/habits/pkg/session"
)

// DefaultPath is the HTTP endpoint used when Runner.Path is empty.
const DefaultPath = "/mcp"

// Runner serves one habits session until ctx is done or the client hangs up.
// With an empty Addr the session is served over stdio.
type Runner struct {
	Session *session.State
	Reports *report.Builder
	Version string

	Addr     string
	Path     string
	CertFile string
	KeyFile  string

	// Out receives the listening line of the HTTP transport.
	Out io.Writer
}

// NewServer exposes svc as an MCP server.
func NewServer(svc *Service, version string) *server.MCPServer {
	if version == "" {
		version = "dev"
	}
	srv := server.NewMCPServer(
		"habits",
		version,
		server.WithResourceCapabilities(false, false),
		server.WithToolCapabilities(false),
		server.WithInstructions("Check in daily habits and plan the hours of a day for one habits session."),
		server.WithResourceRecovery(),
		server.WithRecovery(),
	)
	registerResources(srv, svc)
	registerTools(srv, svc)
	return srv
}

// Do executes the runner.
func (r Runner) Do(ctx context.Context) error {
	if r.Session == nil {
		return errors.New("mcp: no session to serve")
	}
	if (r.CertFile == "") != (r.KeyFile == "") {
		return errors.New("mcp: tls needs both a certificate and a key")
	}

	srv := NewServer(NewService(r.Session, r.Reports), r.Version)
	if r.Addr == "" {
		return server.ServeStdio(srv)
	}
	return r.serveHTTP(ctx, srv)
}

func (r Runner) serveHTTP(ctx context.Context, srv *server.MCPServer) error {
	path := EndpointPath(r.Path)
	mux := http.NewServeMux()
	mux.Handle(path, server.NewStreamableHTTPServer(srv))

	ln, err := net.Listen("tcp", r.Addr)
	if err != nil {
		return fmt.Errorf("mcp: %w", err)
	}

	scheme := "http"
	if r.CertFile != "" {
		scheme = "https"
	}
	if r.Out != nil {
		fmt.Fprintf(r.Out, "serving %d habits and %d records at %s://%s%s\n",
			len(r.Session.Habits), r.Session.Records.Len(), scheme, ln.Addr(), path)
	}

	httpSrv := &http.Server{Handler: mux}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = httpSrv.Shutdown(shutdownCtx)
	}()

	if r.CertFile != "" {
		err = httpSrv.ServeTLS(ln, r.CertFile, r.KeyFile)
	} else {
		err = httpSrv.Serve(ln)
	}
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// EndpointPath normalizes p to a rooted path, defaulting to DefaultPath.
func EndpointPath(p string) string {
	p = strings.TrimSpace(p)
	if p == "" {
		return DefaultPath
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return p
}
