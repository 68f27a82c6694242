package main

import (
	auth "CraneView/internal/auth"
	config "CraneView/internal/config"
	geometry "CraneView/internal/crane/geometry"
	material "CraneView/internal/crane/material"
	render "CraneView/internal/crane/render"
	preview "CraneView/internal/preview"
	report "CraneView/internal/report"
	scad "CraneView/internal/scad"
	session "CraneView/internal/session"
	sheet "CraneView/internal/sheet"
	solver "CraneView/internal/solver"
	"context"
	"encoding/json"
	"sync"
	"syscall"
	"time"

	"log"
	"net/http"
	"os"
	"os/signal"

	"github.com/gorilla/mux"
)

var wg sync.WaitGroup

func CORS(mux *mux.Router) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		mux.ServeHTTP(w, r)
	})
}

func HandleList(mux *mux.Router, cfg config.Config, sess *session.Session) {
	authEnv, err := auth.New(cfg.TokenKey, cfg.AuthUser, cfg.AuthPass)
	if err != nil {
		log.Fatal("auth setup failed:", err)
	}
	authEnv.Disabled = cfg.AuthDisabled
	authEnv.SecureCookie = cfg.TLSCert != ""

	limiter := auth.NewIPRateLimiter(20, 40)

	api := mux.PathPrefix("/api").Subrouter()
	api.Use(limiter.LimitMiddleware)

	api.HandleFunc("/login", authEnv.AuthHandler).Methods("POST")
	api.HandleFunc("/logout", authEnv.LogoutHandler).Methods("POST")

	secureApi := api.NewRoute().Subrouter()
	secureApi.Use(authEnv.AuthMiddleware)

	geometryH := &geometry.Handler{}
	sceneH := &render.Handler{}
	secureApi.HandleFunc("/members", geometryH.Members).Methods("GET")
	secureApi.HandleFunc("/geometry", geometryH.Calc).Methods("POST")
	secureApi.HandleFunc("/scene", sceneH.Calc).Methods("POST")
	secureApi.HandleFunc("/materials", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(material.All())
	}).Methods("GET")

	sessionH := &session.Handler{Session: sess}
	reportH := &report.Handler{Source: sess}
	sheetH := &sheet.Handler{Store: sess}
	scadH := &scad.Handler{Scene: sess.Scene}
	previewH := &preview.Handler{Scene: sess.Scene}

	s := secureApi.PathPrefix("/session").Subrouter()
	s.HandleFunc("/params", sessionH.GetParams).Methods("GET")
	s.HandleFunc("/params", sessionH.PutParams).Methods("PUT", "PATCH")
	s.HandleFunc("/view", sessionH.PutView).Methods("PUT")
	s.HandleFunc("/material", sessionH.PutMaterial).Methods("PUT")
	s.HandleFunc("/solve", sessionH.Solve).Methods("POST")
	s.HandleFunc("/scene", sessionH.GetScene).Methods("GET")
	s.HandleFunc("/result", sessionH.GetResult).Methods("GET")
	s.HandleFunc("/status", sessionH.GetStatus).Methods("GET")
	s.HandleFunc("/report.pdf", reportH.Generate).Methods("GET")
	s.HandleFunc("/export.xlsx", sheetH.Export).Methods("GET")
	s.HandleFunc("/import.xlsx", sheetH.Import).Methods("POST")
	s.HandleFunc("/model.scad", scadH.Model).Methods("GET")
	s.HandleFunc("/preview.webp", previewH.Image).Methods("GET")

	mainFileServer := http.FileServer(http.Dir(cfg.StaticDir))
	mux.PathPrefix("/").
		Handler(mainFileServer)
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("configuration error: ", err)
	}

	client := solver.NewClient(cfg.SolverURL, cfg.SolverTimeout, cfg.SolverRPS)
	client.User, client.Password = cfg.SolverUser, cfg.SolverPass
	sess := session.New(client, cfg.Debounce)
	defer sess.Close()

	mux := mux.NewRouter()
	log.Printf("Starting server on %s (solver %s)", cfg.Addr, cfg.SolverURL)
	HandleList(mux, cfg, sess)
	handler := CORS(mux)

	server := &http.Server{
		Addr:    cfg.Addr,
		Handler: handler,
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		var err error
		if cfg.TLSCert != "" {
			err = server.ListenAndServeTLS(cfg.TLSCert, cfg.TLSKey)
		} else {
			err = server.ListenAndServe()
		}
		if err != nil && err != http.ErrServerClosed {
			log.Printf("Server error: %v", err)
			cancel()
		}
	}()

	<-ctx.Done()
	log.Println("Shutdown signal received, closing active connections")

	shutdownCtx, stop := context.WithTimeout(context.Background(), 5*time.Second)
	defer stop()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server shutdown failed: %v", err)
	}
	log.Println("Server stopped")

	wg.Wait()
}
