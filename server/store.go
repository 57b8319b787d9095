// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package server

import (
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
	"github.com/laralab/heartanalyzer/api"
)

// ErrNotFound is returned for unknown patients and attachments.
var ErrNotFound = errors.New("server: not found")

// Ids of the sample records.
var (
	JohnDoe           = uuid.MustParse("930471cd-b69f-40a8-be5c-5205c56feade")
	JaneDoe           = uuid.MustParse("26c6f92e-e693-448d-aca1-0ec042ac0f82")
	MeasurementsID    = uuid.MustParse("eb635c2c-d485-4f1f-af6f-64098f57010e")
	ScreenshotID      = uuid.MustParse("2d687456-15bc-4e68-9f43-be9194ca03aa")
	AnatomicalModelID = uuid.MustParse("0ba22873-912d-4ca8-a3aa-2c71ca246248")
)

// Store is an in-memory database of patients and attachments.
// It is safe for concurrent use.
type Store struct {
	mu          sync.RWMutex
	patients    map[uuid.UUID]*api.Patient
	attachments map[uuid.UUID]*api.Attachment
	owners      map[uuid.UUID]uuid.UUID

	// order of insertion, for stable listings
	patientOrder    []uuid.UUID
	attachmentOrder []uuid.UUID
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{
		patients:    make(map[uuid.UUID]*api.Patient),
		attachments: make(map[uuid.UUID]*api.Attachment),
		owners:      make(map[uuid.UUID]uuid.UUID),
	}
}

// NewSampleStore returns a store with the two sample patients
// and their three attachments.
func NewSampleStore() *Store {
	st := NewStore()
	st.AddPatient(JohnDoe, api.Patient{
		PatientSummary:    api.PatientSummary{Name: "John Doe", DateOfBirth: "1960-07-15"},
		Sex:               "male",
		AssignedPhysician: "Dr. Carla Clipper",
		ClinicalNotes:     "Echo shows severe mitral stenosis.",
	})
	st.AddPatient(JaneDoe, api.Patient{
		PatientSummary:    api.PatientSummary{Name: "Jane Doe", DateOfBirth: "1964-03-03"},
		Sex:               "female",
		AssignedPhysician: "Dr. Tom Tavi",
	})
	st.AddAttachment(MeasurementsID, JohnDoe, api.Attachment{Name: "measurements/mitral-annulus", MediaType: api.MediaAnalysisPrimitives})
	st.AddAttachment(ScreenshotID, JohnDoe, api.Attachment{Name: "screenshot/mitral-annulus/saddle-shape", MediaType: api.MediaJPEG})
	st.AddAttachment(AnatomicalModelID, JaneDoe, api.Attachment{Name: "3d-model/anatomical", MediaType: api.MediaGLTF})
	return st
}

// AddPatient adds or replaces the patient with the given id.
func (st *Store) AddPatient(id uuid.UUID, p api.Patient) {
	st.mu.Lock()
	defer st.mu.Unlock()
	p.ID = id.String()
	p.Links = PatientLinks(id)
	p.Attachments = nil
	if _, ok := st.patients[id]; !ok {
		st.patientOrder = append(st.patientOrder, id)
	}
	st.patients[id] = &p
}

// AddAttachment adds or replaces the attachment with the given id,
// owned by the given patient.
func (st *Store) AddAttachment(id, owner uuid.UUID, a api.Attachment) {
	st.mu.Lock()
	defer st.mu.Unlock()
	a.ID = id.String()
	a.Links = AttachmentLinks(id, owner, a.MediaType)
	if _, ok := st.attachments[id]; !ok {
		st.attachmentOrder = append(st.attachmentOrder, id)
	}
	st.attachments[id] = &a
	st.owners[id] = owner
}

// Patients returns the summaries of all patients in insertion order.
func (st *Store) Patients() ([]api.PatientSummary, error) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	ps := make([]api.PatientSummary, 0, len(st.patientOrder))
	for _, id := range st.patientOrder {
		var s api.PatientSummary
		if err := copier.Copy(&s, st.patients[id]); err != nil {
			return nil, fmt.Errorf("server: summarizing patient %s: %w", id, err)
		}
		s.Links = slices.Clone(s.Links)
		ps = append(ps, s)
	}
	return ps, nil
}

// Patient returns the full patient with the given id.
func (st *Store) Patient(id uuid.UUID) (*api.Patient, error) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	p, ok := st.patients[id]
	if !ok {
		return nil, fmt.Errorf("%w: patient %s", ErrNotFound, id)
	}
	cp := *p
	cp.Links = slices.Clone(p.Links)
	return &cp, nil
}

// Attachments returns the attachments owned by the given patient,
// or all attachments if owner is nil.
func (st *Store) Attachments(owner *uuid.UUID) []api.Attachment {
	st.mu.RLock()
	defer st.mu.RUnlock()
	as := []api.Attachment{}
	for _, id := range st.attachmentOrder {
		if owner != nil && st.owners[id] != *owner {
			continue
		}
		a := *st.attachments[id]
		a.Links = slices.Clone(a.Links)
		as = append(as, a)
	}
	return as
}

// Attachment returns the attachment with the given id.
func (st *Store) Attachment(id uuid.UUID) (*api.Attachment, error) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	a, ok := st.attachments[id]
	if !ok {
		return nil, fmt.Errorf("%w: attachment %s", ErrNotFound, id)
	}
	cp := *a
	cp.Links = slices.Clone(a.Links)
	return &cp, nil
}

// PatientLinks returns the links of the patient with the given id.
func PatientLinks(id uuid.UUID) []api.Link {
	return []api.Link{
		{Rel: "self", Href: "/patients/" + id.String(), Method: "GET"},
		{Rel: "attachments", Href: "/attachments/?owner_id=" + id.String(), Method: "GET"},
	}
}

// AttachmentLinks returns the links of an attachment. The data link
// points at the static file named by id and media type extension.
func AttachmentLinks(id, owner uuid.UUID, mediaType string) []api.Link {
	return []api.Link{
		{Rel: "self", Href: "/attachments/" + id.String(), Method: "GET"},
		{Rel: "data", Href: DataPath(id, mediaType), Method: "GET"},
		{Rel: "owner", Href: "/patients/" + owner.String(), Method: "GET"},
	}
}

// DataPath returns the static path of an attachment payload.
func DataPath(id uuid.UUID, mediaType string) string {
	return "/static/data/" + DataFile(id, mediaType)
}

// DataFile returns the file name of an attachment payload in the data dir.
func DataFile(id uuid.UUID, mediaType string) string {
	ext := api.Extension(mediaType)
	if ext == "" {
		ext = "bin"
	}
	return id.String() + "." + ext
}
