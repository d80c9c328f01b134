package http

import (
	"errors"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/url"

	"github.com/MKhiriev/go-bookshelf/internal/app"
	"github.com/MKhiriev/go-bookshelf/internal/logger"
	"github.com/MKhiriev/go-bookshelf/internal/service"
	"github.com/MKhiriev/go-bookshelf/internal/store"
	"github.com/MKhiriev/go-bookshelf/internal/utils"
	"github.com/MKhiriev/go-bookshelf/models"
	"github.com/go-chi/chi/v5"
)

const (
	uploadFormField = "file"
	downloadPrefix  = "/content/download/"
)

// upload streams the "file" part of a multipart request into the content
// bucket and attaches it to the book.
func (h *Handler) upload(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)
	bookID := chi.URLParam(r, "id")

	part, err := filePart(r)
	if err != nil {
		log.Debug().Err(err).Msg("no file in upload request")
		h.fail(w, r, service.ErrMissingFile)
		return
	}
	defer part.Close()

	book, err := h.services.ContentService.Upload(r.Context(), bookID, models.Content{
		Filename:    part.FileName(),
		ContentType: part.Header.Get("Content-Type"),
		Body:        part,
	})
	if err != nil {
		if known, ok := lookupError(err); ok && known.status < http.StatusInternalServerError {
			h.fail(w, r, err)
			return
		}

		log.Err(err).Str("book_id", bookID).Msg("error uploading file")
		utils.WriteJSON(w, models.MessageResponse{Message: app.MsgErrorUploadingFile}, http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, models.UploadResponse{
		Message:     app.MsgFileUploaded,
		DownloadURL: downloadPrefix + url.PathEscape(book.OriginalFilename),
	}, http.StatusOK)
}

// filePart returns the first part named "file" that carries a filename.
// Parts before it are skipped without being buffered.
func filePart(r *http.Request) (*multipart.Part, error) {
	reader, err := r.MultipartReader()
	if err != nil {
		return nil, err
	}

	for {
		part, err := reader.NextPart()
		if err != nil {
			return nil, err
		}
		if part.FormName() == uploadFormField && part.FileName() != "" {
			return part, nil
		}
		part.Close()
	}
}

// download streams the content uploaded under the requested filename.
func (h *Handler) download(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)
	filename := pathParam(r, "filename")

	content, err := h.services.ContentService.Download(r.Context(), filename)
	if err != nil {
		if errors.Is(err, store.ErrContentNotFound) {
			h.fail(w, r, err)
			return
		}

		log.Err(err).Str("filename", filename).Msg("error opening file")
		utils.WriteJSON(w, models.MessageResponse{Message: app.MsgErrorRetrievingFile}, http.StatusInternalServerError)
		return
	}
	defer content.Body.Close()

	dw := &downloadWriter{ResponseWriter: w, content: content}
	if _, err = io.Copy(dw, content.Body); err != nil {
		if dw.started {
			log.Err(err).Str("filename", filename).Msg("error streaming file, response is truncated")
			return
		}
		if errors.Is(err, store.ErrContentNotFound) {
			h.fail(w, r, err)
			return
		}

		log.Err(err).Str("filename", filename).Msg("error retrieving file")
		utils.WriteJSON(w, models.MessageResponse{Message: app.MsgErrorRetrievingFile}, http.StatusInternalServerError)
		return
	}

	// an empty file still gets its headers
	dw.start()
}

// downloadWriter sends the file headers right before the first byte of the
// content, so that failures while opening the stream can still be reported
// with a JSON body.
type downloadWriter struct {
	http.ResponseWriter
	content models.Content
	started bool
}

func (w *downloadWriter) start() {
	if w.started {
		return
	}
	w.started = true

	header := w.Header()
	header.Set("Content-Type", w.content.ContentType)
	disposition := mime.FormatMediaType("attachment", map[string]string{"filename": w.content.Filename})
	if disposition == "" {
		disposition = "attachment"
	}
	header.Set("Content-Disposition", disposition)
	w.ResponseWriter.WriteHeader(http.StatusOK)
}

func (w *downloadWriter) Write(b []byte) (int, error) {
	w.start()
	return w.ResponseWriter.Write(b)
}

// pathParam returns the unescaped value of a URL parameter.
func pathParam(r *http.Request, name string) string {
	value := chi.URLParam(r, name)
	if r.URL.RawPath == "" {
		return value
	}

	unescaped, err := url.PathUnescape(value)
	if err != nil {
		return value
	}
	return unescaped
}
