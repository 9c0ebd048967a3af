// Copyright (c) 2026 TTBT Enterprises LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"context"
	"crypto/tls"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sandlot-io/sandlot/backend"
)

var (
	addr           = flag.String("addr", ":8080", "The TCP address to listen to")
	useMockAuth    = flag.Bool("use-mock-auth", false, "Use Mock Authentication. For testing purposes only.")
	debugMode      = flag.Bool("debug", false, "Enable debug mode")
	tlsCert        = flag.String("tls-cert", "", "Path to HTTP TLS certificate")
	tlsKey         = flag.String("tls-key", "", "Path to HTTP TLS key")
	authCookieName = flag.String("auth-cookie-name", "sandlot_auth", "Name of the cookie containing the JWT")
	authJWKSURL    = flag.String("auth-jwks-url", "", "URL of the JWKS endpoint for JWT verification")
	parkConfig     = flag.String("park-config", "", "Path to a YAML file overriding park weather/time factors")
	pruneIdle      = flag.Duration("prune-idle", 24*time.Hour, "Drop games untouched for this long (0 disables)")
)

// main starts the web server and registers the API handlers.
func main() {
	flag.Parse()

	var mainTLSCert *tls.Certificate
	if *tlsCert != "" && *tlsKey != "" {
		cert, err := tls.LoadX509KeyPair(*tlsCert, *tlsKey)
		if err != nil {
			log.Fatalf("Failed to load TLS cert/key: %v", err)
		}
		mainTLSCert = &cert
	}

	park := backend.DefaultParkFactors()
	if *parkConfig != "" {
		p, err := backend.LoadParkFactors(*parkConfig)
		if err != nil {
			log.Fatalf("Failed to load park config %s: %v", *parkConfig, err)
		}
		park = p
		log.Printf("Loaded park factors from %s", *parkConfig)
	}

	store := backend.NewGameStore()
	if *pruneIdle > 0 {
		go func() {
			for range time.Tick(time.Hour) {
				if n := store.PruneIdle(*pruneIdle); n > 0 {
					log.Printf("Pruned %d idle games", n)
				}
			}
		}()
	}

	server, err := backend.StartServer(backend.Options{
		Addr:           *addr,
		Cert:           mainTLSCert,
		UseMockAuth:    *useMockAuth,
		Debug:          *debugMode,
		GameStore:      store,
		Park:           park,
		AuthCookieName: *authCookieName,
		AuthJWKSURL:    *authJWKSURL,
	})
	if err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}

	// Wait for interrupt signal
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	log.Println("Shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Printf("Shutdown error: %v", err)
	} else {
		log.Println("Gracefully stopped.")
	}
}
