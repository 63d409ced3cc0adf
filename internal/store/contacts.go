// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"time"

	"github.com/olegiv/folio-go/internal/model"
)

// CreateContactParams holds parameters for CreateContact.
type CreateContactParams struct {
	Name      string
	Email     string
	Subject   string
	Message   string
	CreatedAt time.Time
}

// CreateContact stores an incoming contact-form message.
func (q *Queries) CreateContact(ctx context.Context, arg CreateContactParams) (int64, error) {
	res, err := q.db.ExecContext(ctx,
		`INSERT INTO contacts (name, email, subject, message, is_read, created_at)
		 VALUES (?, ?, ?, ?, 0, ?)`,
		arg.Name, arg.Email, arg.Subject, arg.Message, arg.CreatedAt)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// ListContactsParams holds pagination for ListContacts.
type ListContactsParams struct {
	Limit  int64
	Offset int64
}

// ListContacts returns contact messages, newest first.
func (q *Queries) ListContacts(ctx context.Context, arg ListContactsParams) ([]model.Contact, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT id, name, email, subject, message, is_read, created_at
		 FROM contacts ORDER BY created_at DESC LIMIT ? OFFSET ?`,
		arg.Limit, arg.Offset)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []model.Contact
	for rows.Next() {
		var c model.Contact
		if err := rows.Scan(&c.ID, &c.Name, &c.Email, &c.Subject, &c.Message,
			&c.IsRead, &c.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// CountUnreadContacts returns the number of unread contact messages.
func (q *Queries) CountUnreadContacts(ctx context.Context) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM contacts WHERE is_read = 0").Scan(&n)
	return n, err
}

// MarkContactRead flags a contact message as read.
func (q *Queries) MarkContactRead(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, "UPDATE contacts SET is_read = 1 WHERE id = ?", id)
	return err
}

// DeleteContact removes a contact message.
func (q *Queries) DeleteContact(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, "DELETE FROM contacts WHERE id = ?", id)
	return err
}
