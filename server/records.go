// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package server

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/laralab/heartanalyzer/api"
	"gopkg.in/yaml.v3"
)

// Records is the YAML file format of a patient database.
type Records struct {
	Patients []PatientRecord `yaml:"patients"`
}

// PatientRecord is a patient with its attachments.
type PatientRecord struct {
	ID                string             `yaml:"id"`
	Name              string             `yaml:"name"`
	DateOfBirth       string             `yaml:"date_of_birth"`
	Sex               string             `yaml:"sex"`
	AssignedPhysician string             `yaml:"assigned_physician"`
	ClinicalNotes     string             `yaml:"clinical_notes"`
	Attachments       []AttachmentRecord `yaml:"attachments"`
}

// AttachmentRecord is an attachment of a [PatientRecord].
type AttachmentRecord struct {
	ID        string `yaml:"id"`
	Name      string `yaml:"name"`
	MediaType string `yaml:"media_type"`
}

// OpenStore returns a store with the records in the given YAML file.
func OpenStore(filename string) (*Store, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	st, err := ReadStore(f)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", filename, err)
	}
	return st, nil
}

// ReadStore returns a store with the YAML records read from r.
// Unknown fields and invalid ids are errors.
func ReadStore(r io.Reader) (*Store, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var recs Records
	if err := dec.Decode(&recs); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	st := NewStore()
	for i, pr := range recs.Patients {
		pid, err := uuid.Parse(pr.ID)
		if err != nil {
			return nil, fmt.Errorf("patient %d: id %q: %w", i, pr.ID, err)
		}
		st.AddPatient(pid, api.Patient{
			PatientSummary:    api.PatientSummary{Name: pr.Name, DateOfBirth: pr.DateOfBirth},
			Sex:               pr.Sex,
			AssignedPhysician: pr.AssignedPhysician,
			ClinicalNotes:     pr.ClinicalNotes,
		})
		for j, ar := range pr.Attachments {
			aid, err := uuid.Parse(ar.ID)
			if err != nil {
				return nil, fmt.Errorf("patient %d: attachment %d: id %q: %w", i, j, ar.ID, err)
			}
			st.AddAttachment(aid, pid, api.Attachment{Name: ar.Name, MediaType: ar.MediaType})
		}
	}
	return st, nil
}
