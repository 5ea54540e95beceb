package cmd

import (
	"errors"

	"github.com/visualvc/versionlog/pkg/vlogctl/client"
	"github.com/visualvc/versionlog/pkg/vlogctl/config"
)

func buildClient(rt *runtimeState) (*client.Client, error) {
	// Server provided via flag or env bypasses config resolution entirely.
	if rt.serverOverride != "" {
		return client.New(
			client.WithServer(rt.serverOverride),
			client.WithSession(rt.sessionOverride),
			client.WithUserAgent("vlogctl"),
		)
	}

	if err := rt.EnsureConfigLoaded(); err != nil {
		return nil, err
	}
	ctxCfg, err := rt.ResolveContext()
	if err != nil {
		return nil, err
	}
	server := rt.resolveServer(ctxCfg)
	if server == "" {
		return nil, errors.New("server is required")
	}

	return client.New(
		client.WithServer(server),
		client.WithSession(rt.resolveSession(ctxCfg)),
		client.WithUserAgent("vlogctl"),
	)
}

// anonymousClient builds a client without a session, for login.
func anonymousClient(rt *runtimeState, ctxCfg *config.Context) (*client.Client, error) {
	server := rt.resolveServer(ctxCfg)
	if server == "" {
		return nil, errors.New("server is required")
	}
	return client.New(
		client.WithServer(server),
		client.WithUserAgent("vlogctl"),
	)
}
