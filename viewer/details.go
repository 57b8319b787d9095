// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package viewer

import (
	"context"

	"cogentcore.org/core/core"
	"cogentcore.org/core/styles"
	"cogentcore.org/core/tree"
	"github.com/laralab/heartanalyzer/analysis"
	"github.com/laralab/heartanalyzer/api"
)

// Record is the read-only part of a patient record shown in the details.
type Record struct {
	DateOfBirth       string
	Sex               string
	AssignedPhysician string
	ClinicalNotes     string
}

// RecordOf returns the record fields of the given patient.
func RecordOf(p *api.Patient) Record {
	if p == nil {
		return Record{}
	}
	return Record{
		DateOfBirth:       p.DateOfBirth,
		Sex:               p.Sex,
		AssignedPhysician: p.AssignedPhysician,
		ClinicalNotes:     p.ClinicalNotes,
	}
}

// overlaySource returns the href of the analysis document the contour
// overlay of p is read from: the data link of its first measurement
// attachment, or def if it has none.
func overlaySource(p *api.Patient, def string) string {
	if p == nil {
		return def
	}
	for i := range p.Attachments {
		a := &p.Attachments[i]
		if a.View() != api.ViewMeasurements {
			continue
		}
		if href, err := a.DataLink(); err == nil {
			return href
		}
	}
	return def
}

func (v *Viewer) makeDetails(p *tree.Plan) {
	if v.patient == nil {
		tree.Add(p, func(w *core.Text) {
			w.SetText("Select a patient")
		})
		return
	}
	tree.Add(p, func(w *core.Text) {
		w.SetType(core.TextHeadlineSmall)
		w.Updater(func() {
			w.SetText(v.patient.Name)
		})
	})
	tree.Add(p, func(w *core.Form) {
		w.SetStruct(&v.record).SetReadOnly(true)
	})
	pt := v.patient
	for i := range pt.Attachments {
		a := &pt.Attachments[i]
		tree.AddAt(p, "attachment-"+a.ID, func(w *core.Frame) {
			v.newAttachmentView(w, pt, a)
		})
	}
}

// newAttachmentView fills fr with the name of the attachment
// and the one view for its media type.
func (v *Viewer) newAttachmentView(fr *core.Frame, pt *api.Patient, a *api.Attachment) {
	fr.Styler(func(s *styles.Style) {
		s.Direction = styles.Column
		s.Grow.Set(1, 0)
	})
	core.NewText(fr).SetType(core.TextTitleMedium).SetText(analysis.Beautify(a.Name))
	switch a.View() {
	case api.ViewMeasurements:
		v.newMeasurementView(fr, a)
	case api.ViewImage:
		v.newImageView(fr, a)
	case api.ViewModel:
		v.models = append(v.models, v.newModelView(fr, a, overlaySource(pt, v.Config.Overlay.Source)))
	default:
		core.NewText(fr).SetText("No view for media type " + a.MediaType)
	}
}

// newMeasurementView adds a read-only table of the scalar
// measurements in the analysis document of a.
func (v *Viewer) newMeasurementView(fr *core.Frame, a *api.Attachment) {
	rows := []analysis.Row{}
	tb := core.NewTable(fr)
	tb.SetSlice(&rows).SetReadOnly(true)
	async(tb, func(ctx context.Context) (analysis.Document, error) {
		pl, err := v.Client.AttachmentData(ctx, a)
		if err != nil {
			return nil, err
		}
		return analysis.Parse(pl.Data)
	}, func(doc analysis.Document, err error) {
		if err != nil {
			core.ErrorSnackbar(tb, err, "Error loading "+a.Name)
			return
		}
		rows = doc.Rows()
		tb.SetSlice(&rows)
		tb.Update()
	})
}

// newImageView adds the screenshot image of a.
func (v *Viewer) newImageView(fr *core.Frame, a *api.Attachment) {
	img := core.NewImage(fr)
	img.Styler(func(s *styles.Style) {
		s.ObjectFit = styles.FitScaleDown
	})
	async(img, func(ctx context.Context) (*api.Payload, error) {
		return v.Client.AttachmentData(ctx, a)
	}, func(pl *api.Payload, err error) {
		if err != nil {
			core.ErrorSnackbar(img, err, "Error loading "+a.Name)
			return
		}
		im, err := pl.Image()
		if err != nil {
			core.ErrorSnackbar(img, err, "Error decoding "+a.Name)
			return
		}
		img.SetImage(im)
		img.NeedsLayout()
	})
}
