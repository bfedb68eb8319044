package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"path/filepath"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/questbank/qmlbank/internal/bank"
	"github.com/questbank/qmlbank/internal/formats"
	"github.com/questbank/qmlbank/internal/question"
	"github.com/questbank/qmlbank/internal/storage"
)

// Store is the bank surface the API needs: the import sink plus reads.
type Store interface {
	bank.Sink
	GetQuestion(ctx context.Context, id string) (question.Question, error)
	ListQuestions(ctx context.Context, opts bank.ListOpts) ([]bank.Summary, error)
}

type importResponse struct {
	Imported []string `json:"imported"`
	Skipped  int      `json:"skipped"`
	Notices  []string `json:"notices,omitempty"`
	Category string   `json:"category,omitempty"`
}

// POST /qml/import (multipart: file=questions.xml, optional category=name)
//
// A category marker question switches the target category for everything
// that follows it in the file; per-question failures become notices and
// the rest of the batch still lands. When an archive is configured the
// raw upload is retained under a date-prefixed key.
func ImportQMLHandler(imp formats.Importer, store Store, archive storage.Archive, log logrus.FieldLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f, hdr, err := r.FormFile("file")
		if err != nil {
			http.Error(w, "file required", http.StatusBadRequest)
			return
		}
		defer f.Close()

		raw, err := io.ReadAll(f)
		if err != nil {
			http.Error(w, "read upload", http.StatusBadRequest)
			return
		}

		archiveKey := ""
		if archive != nil {
			key := time.Now().UTC().Format("2006/01/02") + "/" + uuid.NewString() + "-" + filepath.Base(hdr.Filename)
			if archiveKey, err = archive.Put(key, bytes.NewReader(raw)); err != nil {
				log.WithError(err).WithField("key", key).Warn("upload archive failed")
				archiveKey = ""
			}
		}

		res, err := imp.Import(r.Context(), bytes.NewReader(raw))
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		resp := importResponse{Notices: res.Notices}
		categoryID := ""
		if name := r.FormValue("category"); name != "" {
			categoryID, err = store.PutCategory(r.Context(), name)
			if err != nil {
				http.Error(w, err.Error(), http.StatusInternalServerError)
				return
			}
			resp.Category = categoryID
		}

		for _, q := range res.Questions {
			if cat, ok := q.(question.Category); ok {
				categoryID, err = store.PutCategory(r.Context(), cat.Name)
				if err != nil {
					http.Error(w, err.Error(), http.StatusInternalServerError)
					return
				}
				resp.Category = categoryID
				continue
			}
			id, err := store.PutQuestion(r.Context(), categoryID, q)
			if err != nil {
				http.Error(w, err.Error(), http.StatusInternalServerError)
				return
			}
			resp.Imported = append(resp.Imported, id)
		}
		resp.Skipped = res.Skipped

		log.WithFields(logrus.Fields{
			"file":     hdr.Filename,
			"archive":  archiveKey,
			"imported": len(resp.Imported),
			"notices":  len(res.Notices),
		}).Info("qml import finished")

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}
}

// GET /questions/{id}
func GetQuestionHandler(store Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		q, err := store.GetQuestion(r.Context(), id)
		if err != nil {
			if errors.Is(err, bank.ErrNotFound) {
				http.Error(w, "not found", http.StatusNotFound)
				return
			}
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"kind": q.Kind(), "question": q})
	}
}

// GET /questions?category=...&kind=...&limit=...&offset=...
func ListQuestionsHandler(store Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		opts := bank.ListOpts{
			CategoryID: r.URL.Query().Get("category"),
			Kind:       r.URL.Query().Get("kind"),
		}
		if v := r.URL.Query().Get("limit"); v != "" {
			opts.Limit, _ = strconv.Atoi(v)
		}
		if v := r.URL.Query().Get("offset"); v != "" {
			opts.Offset, _ = strconv.Atoi(v)
		}
		list, err := store.ListQuestions(r.Context(), opts)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(list)
	}
}
