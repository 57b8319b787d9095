// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package api

import (
	"fmt"
)

// Link is a named reference to other entities within the API.
type Link struct {
	Rel    string `json:"rel"`
	Href   string `json:"href"`
	Method string `json:"method"`
}

// Entity is the base of all API models: an id plus its links.
type Entity struct {
	ID    string `json:"id"`
	Links []Link `json:"links"`
}

// Link returns the first link with the given relation.
func (e *Entity) Link(rel string) (Link, bool) {
	for _, l := range e.Links {
		if l.Rel == rel {
			return l, true
		}
	}
	return Link{}, false
}

// Href returns the href of the first link with the given relation,
// or an error wrapping [ErrNoLink].
func (e *Entity) Href(rel string) (string, error) {
	l, ok := e.Link(rel)
	if !ok {
		return "", fmt.Errorf("%w: %q on %s", ErrNoLink, rel, e.ID)
	}
	return l.Href, nil
}

// PatientSummary is the patient representation used in listings.
type PatientSummary struct {
	Entity
	Name        string `json:"name"`
	DateOfBirth string `json:"date_of_birth"`
}

// Patient is the full patient record, including its attachments
// once they have been fetched.
type Patient struct {
	PatientSummary
	Sex               string       `json:"sex"`
	AssignedPhysician string       `json:"assigned_physician,omitempty"`
	ClinicalNotes     string       `json:"clinical_notes,omitempty"`
	Attachments       []Attachment `json:"attachments,omitempty"`
}

// Attachment is a named, typed data artifact belonging to a patient.
type Attachment struct {
	Entity
	Name      string `json:"name"`
	MediaType string `json:"media_type"`
}

// DataLink returns the href of the attachment payload.
func (a *Attachment) DataLink() (string, error) {
	return a.Href("data")
}

// View returns the view that renders this attachment.
func (a *Attachment) View() ViewKind {
	return ViewFor(a.MediaType)
}
