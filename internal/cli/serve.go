// Copyright (c) 2022. Alvin Baena.
// SPDX-License-Identifier: MIT

package cli

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"
	stdlog "log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/likexian/selfca"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/net/netutil"

	"github.com/bhataakib02/cybersecurityCasestudy/internal/api"
	"github.com/bhataakib02/cybersecurityCasestudy/internal/config"
	"github.com/bhataakib02/cybersecurityCasestudy/internal/util"
	"github.com/bhataakib02/cybersecurityCasestudy/pkg/strength"
)

var (
	serveCmd = &cobra.Command{
		Use:   "serve",
		Short: "Serve the password strength API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return serveCommand(cmd)
		},
	}
)

func init() {
	serveCmd.Flags().BoolVar(&selfTLS, "self-tls", false,
		"If the server should use a self-signed certificate when starting. The certificate is renewed on each server restart")
	serveCmd.Flags().StringVar(&tlsCert, "tls-cert", "", "Path to the PEM encoded TLS certificate to be used by the server")
	serveCmd.Flags().StringVar(&tlsKey, "tls-key", "", "Path to the PEM encoded TLS private key to be used by the server")
	serveCmd.Flags().Uint16VarP(&port, "port", "p", 3100, "Port to be used by the server")

	rootCmd.AddCommand(serveCmd)
}

// serverConfig reads the environment and applies the flags set by the user.
func serverConfig(cmd *cobra.Command) (config.Server, error) {
	cfg, err := config.LoadServer()
	if err != nil {
		return cfg, fmt.Errorf("error loading configuration: %w", err)
	}
	engineConfig(&cfg.Engine)

	flags := cmd.Flags()
	if flags.Changed("self-tls") {
		cfg.SelfTLS = selfTLS
	}
	if flags.Changed("tls-cert") {
		cfg.TLSCert = tlsCert
	}
	if flags.Changed("tls-key") {
		cfg.TLSKey = tlsKey
	}
	if flags.Changed("port") {
		cfg.Port = port
	}

	return cfg, config.Validate(cfg)
}

func serveCommand(cmd *cobra.Command) error {
	cfg, err := serverConfig(cmd)
	if err != nil {
		return err
	}

	util.ApplyCliSettings(verbose || cfg.Debug, profile, pprofPort)
	if !verbose && !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	metrics, err := api.NewMetrics(nil)
	if err != nil {
		return fmt.Errorf("error registering metrics: %w", err)
	}

	stats := api.NewStats()
	router, err := api.NewRouter(api.Settings{
		Engine:    strength.New(cfg.Options()),
		Stats:     stats,
		Metrics:   metrics,
		MaxBatch:  cfg.MaxBatch,
		CacheSize: cfg.CacheSize,
		RateLimit: cfg.RateLimit,
	})
	if err != nil {
		return fmt.Errorf("error initializing API: %s", err)
	}
	defer router.Close()

	srvAddr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{
		Addr:              srvAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ErrorLog:          stdLogger(),
	}

	if cfg.TLSCert == "" || cfg.TLSKey == "" {
		log.Warn().Msgf("using auto self-signed certificate for TLS. This is not recommended for production. Please consider using your own certificates.")
		if srv.TLSConfig, err = selfSignedTLS(); err != nil {
			return err
		}
	}

	listener, err := net.Listen("tcp", srvAddr)
	if err != nil {
		return fmt.Errorf("error listening on %s: %w", srvAddr, err)
	}
	if cfg.MaxConnections > 0 {
		listener = netutil.LimitListener(listener, cfg.MaxConnections)
	}

	stats.BeginProgress(time.Minute)
	go func() {
		log.Info().Msgf("starting TLS Server on address: %s", srvAddr)
		// with a TLS config no files are needed
		if err := srv.ServeTLS(listener, cfg.TLSCert, cfg.TLSKey); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("error starting server")
		}
	}()

	gracefulShutdown(srv)
	stats.Done()
	return nil
}

func selfSignedTLS() (*tls.Config, error) {
	caConfig := selfca.Certificate{
		IsCA:      true,
		KeySize:   2048,
		NotBefore: time.Now(),
		// 30 day self-signed cert.
		NotAfter: time.Now().Add(time.Duration(30*24) * time.Hour),
	}

	// generating the certificate
	certificate, key, err := selfca.GenerateCertificate(caConfig)
	if err != nil {
		return nil, fmt.Errorf("error generating auto self-signed certificate: %w", err)
	}

	pair, err := tls.X509KeyPair(
		pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: certificate}),
		pem.EncodeToMemory(&pem.Block{Type: "RSA PRIVATE KEY", Bytes: x509.MarshalPKCS1PrivateKey(key)}),
	)
	if err != nil {
		return nil, fmt.Errorf("error using auto self-signed certificate: %w", err)
	}

	return &tls.Config{
		MinVersion:   tls.VersionTLS12,
		Certificates: []tls.Certificate{pair},
	}, nil
}

// stdLogger routes the http.Server errors, TLS handshakes mostly, to zerolog.
func stdLogger() *stdlog.Logger {
	return stdlog.New(log.With().Str("component", "http").Logger(), "", 0)
}

func gracefulShutdown(srv *http.Server) {
	// Wait for interrupt signal to gracefully shut down the server with
	// a timeout.
	quit := make(chan os.Signal, 1)
	// kill (no param) default send syscall.SIGTERM
	// kill -2 is syscall.SIGINT
	// kill -9 is syscall. SIGKILL but can't be a catch, so don't need to add it
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Warn().Err(err).Msg("server Shutdown.")
	}
	log.Info().Msg("server exiting...")
}
