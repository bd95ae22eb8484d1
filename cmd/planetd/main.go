package main

import (
	"crypto/ed25519"
	"crypto/rand"
	"crypto/x509"
	"encoding/pem"
	"flag"
	"log"
	"net/http"
	"os"

	"golang.org/x/sync/errgroup"

	"planetgen/internal/planet"
	"planetgen/internal/server"
)

func main() {
	log.SetFlags(log.Ltime | log.Lshortfile)

	httpAddr := flag.String("http", ":8080", "websocket/HTTP listen address (empty to disable)")
	sshAddr := flag.String("ssh", "", "SSH preview listen address, e.g. :2222 (empty to disable)")
	hostKey := flag.String("host-key", "host_key", "SSH host key file; generated when missing")
	preset := flag.String("preset", "planet", "preset served to new sessions")
	configPath := flag.String("config", "", "JSON planet config; replaces the preset")
	block := flag.Int("block", 2, "PNG pixels per cell")
	flag.Parse()

	base := planet.FromPreset(*preset, nil)
	if *configPath != "" {
		cfg, err := planet.LoadConfig(*configPath)
		if err != nil {
			log.Fatalf("Config error: %v", err)
		}
		base = cfg
	}
	if err := base.Validate(); err != nil {
		log.Fatalf("Config error: %v", err)
	}
	newPlanet := func() *planet.Planet { return planet.NewWithConfig(*preset, base) }

	var g errgroup.Group
	if *httpAddr != "" {
		g.Go(func() error {
			log.Printf("HTTP server listening on %s (/ws, /planet.png, /state)", *httpAddr)
			return http.ListenAndServe(*httpAddr, server.NewMux(newPlanet, *block))
		})
	}
	if *sshAddr != "" {
		if err := ensureHostKey(*hostKey); err != nil {
			log.Fatalf("Host key error: %v", err)
		}
		g.Go(func() error {
			return server.NewSSHServer(*sshAddr, *hostKey, newPlanet).Start()
		})
	}
	if err := g.Wait(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

func ensureHostKey(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	}

	log.Println("Generating new host key...")
	_, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return err
	}
	keyBytes, err := x509.MarshalPKCS8PrivateKey(priv)
	if err != nil {
		return err
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return err
	}
	defer f.Close()
	return pem.Encode(f, &pem.Block{Type: "PRIVATE KEY", Bytes: keyBytes})
}
