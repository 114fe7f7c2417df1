package grpc

import (
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"strings"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/credentials/insecure"
)

// ParseGrpcUri strips any http(s) scheme from the uri and reports whether the connection should use TLS.
//
// TLS is used for https:// uris and for any uri whose port ends in 443.
func ParseGrpcUri(grpcUri string) (target string, useTLS bool) {
	target = strings.TrimSpace(grpcUri)
	switch {
	case strings.HasPrefix(target, "https://"):
		target = strings.TrimPrefix(target, "https://")
		useTLS = true
	case strings.HasPrefix(target, "http://"):
		target = strings.TrimPrefix(target, "http://")
	}
	target = strings.TrimSuffix(target, "/")

	if strings.HasSuffix(target, "443") {
		useTLS = true
	}
	return target, useTLS
}

// GetGrpcConnection creates a client connection. The connection is lazy, nothing is dialed until the first call.
func GetGrpcConnection(grpcUri string, extraOpts ...grpc.DialOption) (*grpc.ClientConn, error) {
	target, useTLS := ParseGrpcUri(grpcUri)
	if target == "" {
		return nil, fmt.Errorf("empty grpc uri")
	}

	// Handle connections using SSL
	transportCredentials := grpc.WithTransportCredentials(insecure.NewCredentials())
	if useTLS {
		certPool, err := x509.SystemCertPool()
		if err != nil {
			return nil, fmt.Errorf("failed to load system certificates: %w", err)
		}

		creds := credentials.NewTLS(&tls.Config{
			RootCAs:    certPool,
			MinVersion: tls.VersionTLS12,
		})
		transportCredentials = grpc.WithTransportCredentials(creds)
	}

	opts := []grpc.DialOption{
		transportCredentials,
	}
	opts = append(opts, extraOpts...)

	return grpc.NewClient(
		target,
		opts...,
	)
}
