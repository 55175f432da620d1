// Copyright (c) 2026 Revelate Operations.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/DrewRevelate/revelate-website-sub000/broadcast"
	"github.com/DrewRevelate/revelate-website-sub000/cliparse"
	"github.com/DrewRevelate/revelate-website-sub000/contacts"
	"github.com/DrewRevelate/revelate-website-sub000/identity"
	"github.com/DrewRevelate/revelate-website-sub000/middleware"
	"github.com/DrewRevelate/revelate-website-sub000/models"
)

type ContactHandler struct {
	store  *contacts.Store
	linker *contacts.Linker
	bus    *broadcast.Bus
	cfg    cliparse.Config
}

func NewContactHandler(store *contacts.Store, linker *contacts.Linker, bus *broadcast.Bus, cfg cliparse.Config) *ContactHandler {
	return &ContactHandler{store: store, linker: linker, bus: bus, cfg: cfg}
}

// CreateContact handles POST /contacts
// Creation is durable before linking starts; a linking failure never surfaces
// to the submitter.
func (h *ContactHandler) CreateContact(w http.ResponseWriter, r *http.Request) {
	var req models.CreateContactRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	if req.Name == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "name is required")
		return
	}
	if req.Email == "" || !strings.Contains(req.Email, "@") {
		middleware.ErrorResponse(w, http.StatusBadRequest, "a valid email is required")
		return
	}

	contact := models.Contact{
		Name:    req.Name,
		Email:   req.Email,
		Company: req.Company,
		Phone:   req.Phone,
		Message: req.Message,
		IPHash:  identity.HashIP(middleware.GetClientIP(r), h.cfg.IPHashSalt),
	}

	if err := h.store.Create(r.Context(), &contact); err != nil {
		slog.Error("failed to create contact", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create contact")
		return
	}

	clientToken := req.ClientToken
	if clientToken == "" {
		clientToken = r.Header.Get("X-Client-Token")
	}
	linked := h.linker.Link(r.Context(), &contact, clientToken)

	h.bus.Publish(broadcast.Event{Kind: models.EventContact})

	middleware.JSONResponse(w, http.StatusCreated, models.CreateContactResponse{
		ContactUID:      contact.UID,
		LinkedResponses: linked,
	})
}

// ListContacts handles GET /admin/contacts
func (h *ContactHandler) ListContacts(w http.ResponseWriter, r *http.Request) {
	if !requireAdmin(w, r, h.cfg) {
		return
	}

	list, err := h.store.List(r.Context())
	if err != nil {
		slog.Error("failed to list contacts", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, list)
}

// GetContact handles GET /admin/contacts/:uid
// Returns the contact with its tags and full interaction log.
func (h *ContactHandler) GetContact(w http.ResponseWriter, r *http.Request) {
	if !requireAdmin(w, r, h.cfg) {
		return
	}

	uid := r.PathValue("uid")
	contact, err := h.store.GetByUID(r.Context(), uid)
	if err != nil {
		if errors.Is(err, contacts.ErrContactNotFound) {
			middleware.ErrorResponse(w, http.StatusNotFound, "Contact not found")
			return
		}
		slog.Error("failed to query contact", "error", err, "contact_uid", uid)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	tags, err := h.store.ListTags(r.Context(), contact.ID)
	if err != nil {
		slog.Error("failed to query contact tags", "error", err, "contact_uid", uid)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	interactions, err := h.store.ListInteractions(r.Context(), contact.ID)
	if err != nil {
		slog.Error("failed to query contact interactions", "error", err, "contact_uid", uid)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.ContactDetailResponse{
		Contact:      *contact,
		Tags:         tags,
		Interactions: interactions,
	})
}

// UpdateContactStatus handles POST /admin/contacts/:uid/status
func (h *ContactHandler) UpdateContactStatus(w http.ResponseWriter, r *http.Request) {
	if !requireAdmin(w, r, h.cfg) {
		return
	}

	uid := r.PathValue("uid")

	var req models.UpdateContactStatusRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.Status == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "status is required")
		return
	}

	if err := h.store.UpdateStatus(r.Context(), uid, req.Status, req.Note); err != nil {
		if errors.Is(err, contacts.ErrContactNotFound) {
			middleware.ErrorResponse(w, http.StatusNotFound, "Contact not found")
			return
		}
		slog.Error("failed to update contact status", "error", err, "contact_uid", uid)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	contact, err := h.store.GetByUID(r.Context(), uid)
	if err != nil {
		slog.Error("failed to re-query contact", "error", err, "contact_uid", uid)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, contact)
}
