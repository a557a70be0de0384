package cache

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"sync"
	"time"

	"syslogbull/internal/config"

	"github.com/valkey-io/valkey-go"
)

var (
	once         sync.Once
	valkeyClient valkey.Client
)

// GetCache returns the shared Valkey client, or nil when no Valkey host is
// configured.
func GetCache() valkey.Client {
	once.Do(func() {
		env := config.GetEnv()
		if !env.IsCacheEnabled() {
			return
		}

		client, err := NewValkeyClient(
			env.ValkeyHost,
			env.ValkeyPort,
			env.ValkeyUsername,
			env.ValkeyPassword,
			env.ValkeyIsSsl,
		)
		if err != nil {
			panic(err)
		}

		valkeyClient = client
	})

	return valkeyClient
}

func NewValkeyClient(host, port, username, password string, isSsl bool) (valkey.Client, error) {
	options := valkey.ClientOption{
		InitAddress: []string{net.JoinHostPort(host, port)},
		Password:    password,
		Username:    username,
	}

	if isSsl {
		options.TLSConfig = &tls.Config{
			ServerName: host,
		}
	}

	client, err := valkey.NewClient(options)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to valkey at %s:%s: %w", host, port, err)
	}

	return client, nil
}

func Ping(ctx context.Context, client valkey.Client) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	return client.Do(ctx, client.B().Ping().Build()).Error()
}
