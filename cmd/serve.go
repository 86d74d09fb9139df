package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var servePort int

// maxUploadBytes bounds the multipart form held in memory per request.
const maxUploadBytes = 32 << 20

// apiResponse is the envelope every endpoint returns.
type apiResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
	Data    any    `json:"data,omitempty"`
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the report upload server",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		env, err := initPipeline("")
		if err != nil {
			return err
		}

		r := chi.NewRouter()
		r.Use(middleware.RequestID)
		r.Use(middleware.Recoverer)
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: []string{"*"},
			AllowedMethods: []string{http.MethodGet, http.MethodPost},
			AllowedHeaders: []string{"Accept", "Content-Type"},
		}))

		r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
			writeJSON(w, http.StatusOK, apiResponse{Success: true, Message: "ok"})
		})

		r.Post("/upload", func(w http.ResponseWriter, req *http.Request) {
			handleUpload(env, w, req)
		})

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		srv := &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: r,
		}

		// Graceful shutdown
		go func() {
			<-ctx.Done()
			zap.L().Info("shutting down server")
			srv.Shutdown(ctx)
		}()

		zap.L().Info("starting server", zap.Int("port", port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return eris.Wrap(err, "server listen")
		}

		return nil
	},
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}

// handleUpload receives a multipart document, runs it through OCR and
// extraction, and returns the result. The upload is spooled to a temp file
// so the local OCR provider can read it by path.
func handleUpload(env *pipelineEnv, w http.ResponseWriter, req *http.Request) {
	if err := req.ParseMultipartForm(maxUploadBytes); err != nil {
		writeJSON(w, http.StatusBadRequest, apiResponse{Error: "invalid multipart form"})
		return
	}

	file, header, err := req.FormFile("file")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, apiResponse{Error: "file field is required"})
		return
	}
	defer file.Close() //nolint:errcheck

	log := zap.L().With(
		zap.String("upload_id", uuid.NewString()),
		zap.String("filename", header.Filename),
	)

	tmpPath := filepath.Join(os.TempDir(), uuid.NewString()+filepath.Ext(header.Filename))
	tmp, err := os.Create(tmpPath)
	if err != nil {
		log.Error("spool upload failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, apiResponse{Error: "could not store upload"})
		return
	}
	defer os.Remove(tmpPath) //nolint:errcheck

	if _, err := io.Copy(tmp, file); err != nil {
		tmp.Close() //nolint:errcheck
		log.Error("spool upload failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, apiResponse{Error: "could not store upload"})
		return
	}
	if err := tmp.Close(); err != nil {
		log.Error("spool upload failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, apiResponse{Error: "could not store upload"})
		return
	}

	result, err := extractOne(req.Context(), env, tmpPath)
	if err != nil {
		log.Error("extraction failed", zap.Error(err))
		writeJSON(w, http.StatusUnprocessableEntity, apiResponse{Error: "extraction failed"})
		return
	}

	log.Info("upload extracted",
		zap.Int("investigations", len(result.Investigations)),
		zap.Int("warnings", len(result.Warnings)),
	)
	writeJSON(w, http.StatusOK, apiResponse{
		Success: true,
		Message: "extraction complete",
		Data:    result,
	})
}

func writeJSON(w http.ResponseWriter, status int, body apiResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		zap.L().Warn("write response failed", zap.Error(err))
	}
}
