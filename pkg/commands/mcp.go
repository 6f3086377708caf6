package commands

import (
	"context"
	"fmt"
	"net"
	"strconv"
	"strings"

	base "github.com/n3wscott/cli-base/pkg/commands/options"
	"github.com/spf13/cobra"

	"tableflip.dev/daybook/pkg/runner/mcp"
)

func addMCP(topLevel *cobra.Command) {
	var (
		transport   string
		httpHost    string
		httpPort    int
		httpPath    string
		httpTLSCert string
		httpTLSKey  string
	)

	cmd := &cobra.Command{
		Use:   "mcp",
		Short: base.Wrap80("Start the Model Context Protocol server."),
		Long: `Launch an MCP server that exposes todos, countdowns, milestones and the
timeline as tools and resources. Changes made by other daybook processes are
picked up while the server runs.`,
		Example: `
daybook mcp
daybook mcp --transport=stdio
daybook mcp --http-port=0
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := mcp.ParseTransport(transport)
			if err != nil {
				return err
			}

			path := strings.TrimSpace(httpPath)
			if path == "" {
				path = "/mcp"
			}
			if !strings.HasPrefix(path, "/") {
				path = "/" + path
			}

			host := strings.TrimSpace(httpHost)
			if host == "" {
				host = "127.0.0.1"
			}
			if httpPort < 0 || httpPort > 65535 {
				return fmt.Errorf("invalid http-port %d", httpPort)
			}
			addr := net.JoinHostPort(host, strconv.Itoa(httpPort))

			ctx, stop := interruptible(cmd)
			defer stop()

			return withSessionContext(ctx, cmd, func(ctx context.Context, s *session) error {
				runner := mcp.Runner{
					Service:          s.svc,
					Timeline:         s.timeline(),
					Name:             "daybook",
					Version:          version,
					Log:              s.log,
					Transport:        kind,
					HTTPListenAddr:   addr,
					HTTPEndpointPath: path,
					HTTPServerCert:   strings.TrimSpace(httpTLSCert),
					HTTPServerKey:    strings.TrimSpace(httpTLSKey),
				}
				if kind == mcp.TransportHTTP {
					runner.OnHTTPListening = func(a net.Addr) {
						_, _ = fmt.Fprintf(cmd.OutOrStdout(), "MCP HTTP server listening on %s\n",
							listeningURL(a, host, addr, path, runner.HTTPServerCert != "" && runner.HTTPServerKey != ""))
					}
				}
				return quietCancel(runner.Do(ctx))
			})
		},
	}

	cmd.Flags().StringVar(&transport, "transport", string(mcp.TransportHTTP), "transport to use: http or stdio")
	cmd.Flags().StringVar(&httpHost, "http-host", "127.0.0.1", "host/interface for HTTP transport")
	cmd.Flags().IntVar(&httpPort, "http-port", 8080, "port for HTTP transport (use 0 for random)")
	cmd.Flags().StringVar(&httpPath, "http-path", "/mcp", "HTTP endpoint path")
	cmd.Flags().StringVar(&httpTLSCert, "http-tls-cert", "", "TLS certificate file for HTTPS")
	cmd.Flags().StringVar(&httpTLSKey, "http-tls-key", "", "TLS private key file for HTTPS")

	topLevel.AddCommand(cmd)
}

// listeningURL is the address a client should dial. Wildcard hosts are
// replaced with something reachable.
func listeningURL(a net.Addr, host, addr, path string, tls bool) string {
	tcpAddr, ok := a.(*net.TCPAddr)
	if !ok {
		return addr + path
	}

	displayHost := host
	if displayHost == "" || displayHost == "0.0.0.0" || displayHost == "::" {
		if tcpAddr.IP != nil && !tcpAddr.IP.IsUnspecified() {
			displayHost = tcpAddr.IP.String()
		} else {
			displayHost = "127.0.0.1"
		}
	}
	if strings.Contains(displayHost, ":") && !strings.HasPrefix(displayHost, "[") {
		displayHost = "[" + displayHost + "]"
	}

	scheme := "http"
	if tls {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s:%d%s", scheme, displayHost, tcpAddr.Port, path)
}
