package voucher

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"github.com/snowtrip/hokkaido/internal/rest"
	"github.com/snowtrip/hokkaido/pkg/itinerary"
)

const maxUploadBytes = 10 << 20

type VoucherDTO struct {
	Key                string          `json:"key"`
	ConfirmationNumber string          `json:"confirmationNumber"`
	URL                string          `json:"url"`
	Note               string          `json:"note"`
	ImageRef           string          `json:"imageRef"`
	Mode               string          `json:"mode"`
	UpdatedAt          string          `json:"updatedAt"`
	Activity           *ActivityRefDTO `json:"activity,omitempty"`
}

// ActivityRefDTO names the itinerary activity a voucher belongs to.
type ActivityRefDTO struct {
	Day   int    `json:"day"`
	Date  string `json:"date"`
	Time  string `json:"time"`
	Title string `json:"title"`
}

type FieldsDTO struct {
	ConfirmationNumber string `json:"confirmationNumber"`
	URL                string `json:"url"`
	Note               string `json:"note"`
	ImageRef           string `json:"imageRef"`
}

type ImageRefDTO struct {
	ImageRef string `json:"imageRef"`
}

// ActivityFinder resolves a voucher key to the itinerary activity carrying it.
type ActivityFinder func(ctx context.Context, voucherKey string) (itinerary.Day, itinerary.Activity, error)

type Handler struct {
	service        Service
	activityFinder ActivityFinder
}

func NewHandler(service Service, activityFinder ActivityFinder) *Handler {
	return &Handler{service: service, activityFinder: activityFinder}
}

// List godoc
// @Summary List vouchers of the current session
// @Tags Voucher
// @Produce json
// @Success 200 {array} VoucherDTO
// @Router /api/vouchers [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	vouchers, err := h.service.List(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	dtos := make([]VoucherDTO, 0, len(vouchers))
	for _, v := range vouchers {
		dtos = append(dtos, h.toDTO(r.Context(), v))
	}
	rest.WriteJSON(w, http.StatusOK, dtos)
}

// Open godoc
// @Summary Open a voucher
// @Description Returns the voucher, creating it on first view. A voucher without confirmation number and link opens in edit mode.
// @Tags Voucher
// @Produce json
// @Param key path string true "Voucher key"
// @Success 200 {object} VoucherDTO
// @Failure 400 {object} rest.ErrorResponse
// @Router /api/vouchers/{key} [get]
func (h *Handler) Open(w http.ResponseWriter, r *http.Request) {
	key := mux.Vars(r)["key"]
	v, err := h.service.Open(r.Context(), key)
	if err != nil {
		h.writeError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, h.toDTO(r.Context(), v))
}

// Edit godoc
// @Summary Switch a voucher to edit mode
// @Tags Voucher
// @Produce json
// @Param key path string true "Voucher key"
// @Success 200 {object} VoucherDTO
// @Failure 400 {object} rest.ErrorResponse
// @Router /api/vouchers/{key}/edit [post]
func (h *Handler) Edit(w http.ResponseWriter, r *http.Request) {
	key := mux.Vars(r)["key"]
	v, err := h.service.Edit(r.Context(), key)
	if err != nil {
		h.writeError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, h.toDTO(r.Context(), v))
}

// Save godoc
// @Summary Save voucher fields
// @Description Writes the fields verbatim and switches the voucher to view mode.
// @Tags Voucher
// @Accept json
// @Produce json
// @Param key path string true "Voucher key"
// @Param fields body FieldsDTO true "Voucher fields"
// @Success 200 {object} VoucherDTO
// @Failure 400 {object} rest.ErrorResponse
// @Router /api/vouchers/{key} [put]
func (h *Handler) Save(w http.ResponseWriter, r *http.Request) {
	key := mux.Vars(r)["key"]
	var fields FieldsDTO
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}
	v, err := h.service.Save(r.Context(), key, Fields{
		ConfirmationNumber: fields.ConfirmationNumber,
		URL:                fields.URL,
		Note:               fields.Note,
		ImageRef:           fields.ImageRef,
	})
	if err != nil {
		h.writeError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, h.toDTO(r.Context(), v))
}

// UploadImage godoc
// @Summary Upload a voucher image
// @Description Stores the image and returns a reference to pass on the next save.
// @Tags Voucher
// @Accept multipart/form-data
// @Produce json
// @Param key path string true "Voucher key"
// @Param image formData file true "Image file"
// @Success 201 {object} ImageRefDTO
// @Failure 400 {object} rest.ErrorResponse
// @Failure 413 {object} rest.ErrorResponse
// @Router /api/vouchers/{key}/image [post]
func (h *Handler) UploadImage(w http.ResponseWriter, r *http.Request) {
	key := mux.Vars(r)["key"]
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			rest.WriteError(w, http.StatusRequestEntityTooLarge, "Image too large", err.Error())
			return
		}
		rest.WriteError(w, http.StatusBadRequest, "Invalid multipart form", err.Error())
		return
	}
	file, _, err := r.FormFile("image")
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Missing image", err.Error())
		return
	}
	defer file.Close()

	ref, err := h.service.UploadImage(r.Context(), key, file)
	if err != nil {
		h.writeError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusCreated, ImageRefDTO{ImageRef: ref})
}

// Image godoc
// @Summary Download a voucher image
// @Tags Voucher
// @Produce jpeg
// @Param ref path string true "Image reference"
// @Success 200 {file} binary
// @Failure 400 {object} rest.ErrorResponse
// @Failure 404 {object} rest.ErrorResponse
// @Router /api/vouchers/images/{ref} [get]
func (h *Handler) Image(w http.ResponseWriter, r *http.Request) {
	ref := mux.Vars(r)["ref"]
	data, err := h.service.Image(r.Context(), ref)
	if err != nil {
		h.writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", imageContentType)
	w.Header().Set("Cache-Control", "private, max-age=86400")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		log.Errorf("failed to write image %s: %v", ref, err)
	}
}

// QRCode godoc
// @Summary QR code for a voucher
// @Description Encodes the booking link, or the confirmation number when there is no link.
// @Tags Voucher
// @Produce png
// @Param key path string true "Voucher key"
// @Success 200 {file} binary
// @Failure 400 {object} rest.ErrorResponse
// @Failure 422 {object} rest.ErrorResponse
// @Router /api/vouchers/{key}/qr [get]
func (h *Handler) QRCode(w http.ResponseWriter, r *http.Request) {
	key := mux.Vars(r)["key"]
	png, err := h.service.QRCode(r.Context(), key)
	if err != nil {
		h.writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(png); err != nil {
		log.Errorf("failed to write QR code for voucher %s: %v", key, err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidKey), errors.Is(err, ErrInvalidImage), errors.Is(err, ErrInvalidImageRef):
		rest.WriteError(w, http.StatusBadRequest, err.Error(), "")
	case errors.Is(err, ErrImageNotFound):
		rest.WriteError(w, http.StatusNotFound, err.Error(), "")
	case errors.Is(err, ErrNothingToEncode):
		rest.WriteError(w, http.StatusUnprocessableEntity, err.Error(), "")
	default:
		log.Errorf("voucher request failed: %v", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *Handler) toDTO(ctx context.Context, v Voucher) VoucherDTO {
	dto := VoucherDTO{
		Key:                v.Key,
		ConfirmationNumber: v.ConfirmationNumber,
		URL:                v.URL,
		Note:               v.Note,
		ImageRef:           v.ImageRef,
		Mode:               string(v.Mode),
		UpdatedAt:          v.UpdatedAt.Format(time.RFC3339),
	}
	if h.activityFinder == nil {
		return dto
	}
	day, activity, err := h.activityFinder(ctx, v.Key)
	if err == nil {
		dto.Activity = &ActivityRefDTO{
			Day:   day.Number,
			Date:  day.Date,
			Time:  activity.Time,
			Title: activity.Title,
		}
	}
	return dto
}
