// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"
	"net/mail"
	"strings"
	"time"

	"github.com/olegiv/folio-go/internal/model"
	"github.com/olegiv/folio-go/internal/store"
)

// ContactRequest is the public contact-form payload.
type ContactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

const (
	maxContactNameLen    = 200
	maxContactSubjectLen = 300
	maxContactMessageLen = 5000
)

// SubmitContact stores a contact-form message. The route sits behind an
// IP rate limiter; validation here only enforces shape and size.
func (h *Handler) SubmitContact(w http.ResponseWriter, r *http.Request) {
	var req ContactRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	req.Subject = strings.TrimSpace(req.Subject)
	req.Message = strings.TrimSpace(req.Message)

	fieldErrors := map[string]string{}
	if req.Name == "" || len(req.Name) > maxContactNameLen {
		fieldErrors["name"] = "Name is required"
	}
	if _, err := mail.ParseAddress(req.Email); err != nil {
		fieldErrors["email"] = "A valid email address is required"
	}
	if len(req.Subject) > maxContactSubjectLen {
		fieldErrors["subject"] = "Subject is too long"
	}
	if req.Message == "" || len(req.Message) > maxContactMessageLen {
		fieldErrors["message"] = "Message is required and limited to 5000 characters"
	}
	if len(fieldErrors) > 0 {
		WriteValidationError(w, fieldErrors)
		return
	}

	id, err := h.queries.CreateContact(r.Context(), store.CreateContactParams{
		Name:      req.Name,
		Email:     req.Email,
		Subject:   req.Subject,
		Message:   req.Message,
		CreatedAt: time.Now(),
	})
	if err != nil {
		WriteInternalError(w, "Failed to submit message")
		return
	}

	WriteCreated(w, map[string]int64{"id": id})
}

// ContactListResponse pairs the message page with the unread count the
// admin dashboard badges.
type ContactListResponse struct {
	Contacts []model.Contact `json:"contacts"`
	Unread   int64           `json:"unread"`
}

// AdminListContacts returns contact messages newest first, paginated.
func (h *Handler) AdminListContacts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	page := ParsePageParam(r)
	perPage := ParsePerPageParam(r, 20, 100)

	contacts, err := h.queries.ListContacts(ctx, store.ListContactsParams{
		Limit:  int64(perPage),
		Offset: int64((page - 1) * perPage),
	})
	if err != nil {
		WriteInternalError(w, "Failed to retrieve messages")
		return
	}
	unread, err := h.queries.CountUnreadContacts(ctx)
	if err != nil {
		WriteInternalError(w, "Failed to retrieve messages")
		return
	}

	WriteSuccess(w, ContactListResponse{Contacts: contacts, Unread: unread},
		&Meta{Page: page, PerPage: perPage})
}

// AdminMarkContactRead marks a message as read.
func (h *Handler) AdminMarkContactRead(w http.ResponseWriter, r *http.Request) {
	id, err := ParseIDParam(r)
	if err != nil {
		WriteBadRequest(w, "Invalid message ID", nil)
		return
	}
	if err := h.queries.MarkContactRead(r.Context(), id); err != nil {
		WriteInternalError(w, "Failed to update message")
		return
	}
	WriteNoContent(w)
}

// AdminDeleteContact removes a message.
func (h *Handler) AdminDeleteContact(w http.ResponseWriter, r *http.Request) {
	id, err := ParseIDParam(r)
	if err != nil {
		WriteBadRequest(w, "Invalid message ID", nil)
		return
	}
	if err := h.queries.DeleteContact(r.Context(), id); err != nil {
		WriteInternalError(w, "Failed to delete message")
		return
	}
	WriteNoContent(w)
}
