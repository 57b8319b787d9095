// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package viewer provides the heart analyzer GUI: a patient list,
// the selected patient's record and a view for each attachment.
package viewer

import (
	"context"
	"fmt"
	"log/slog"

	"cogentcore.org/core/base/errors"
	"cogentcore.org/core/core"
	"cogentcore.org/core/events"
	"cogentcore.org/core/icons"
	"cogentcore.org/core/math32"
	"cogentcore.org/core/styles"
	"cogentcore.org/core/tree"
	"github.com/laralab/heartanalyzer/api"
	"github.com/laralab/heartanalyzer/config"
	"github.com/laralab/heartanalyzer/points"
)

// Title is the window title.
const Title = "LARALAB Heart Analyzer"

// PointsFile is the file the model points are exported to.
const PointsFile = "points.json"

// Viewer is the heart analyzer application.
type Viewer struct {

	// Config is the application configuration.
	Config *config.Config

	// Client is the API client.
	Client *api.Client

	// Points holds the vertex positions of the current model.
	Points *points.Store

	// Settings are the 3D display settings.
	Settings Settings

	patients []api.PatientSummary
	shown    []int
	names    []string
	query    string
	patient  *api.Patient
	record   Record
	models   []*ModelView

	list    *core.List
	details *core.Frame
}

// New returns a new viewer for the given configuration.
func New(cfg *config.Config) *Viewer {
	v := &Viewer{Config: cfg, Client: api.NewClient(cfg.API), Points: &points.Store{}}
	v.Settings.Defaults()
	v.Points.OnChange(func(pts []math32.Vector3) {
		slog.Info("model points", "count", len(pts))
	})
	return v
}

// ConfigGUI builds the GUI and starts loading the patient list.
func (v *Viewer) ConfigGUI() *core.Body {
	b := core.NewBody("heartview").SetTitle(Title)
	b.AddTopBar(func(bar *core.Frame) {
		core.NewToolbar(bar).Maker(v.MakeToolbar)
	})

	split := core.NewSplits(b)
	lfr := core.NewFrame(split)
	lfr.Styler(func(s *styles.Style) {
		s.Direction = styles.Column
	})
	core.NewText(lfr).SetType(core.TextTitleMedium).SetText("Patients")
	search := core.NewTextField(lfr).SetPlaceholder("Search")
	search.OnInput(func(e events.Event) {
		v.query = search.Text()
		v.filter()
	})
	v.list = core.NewList(lfr)
	v.list.SetSlice(&v.names).SetReadOnly(true)
	v.list.OnSelect(func(e events.Event) {
		v.SelectPatient(v.list.SelectedIndex)
	})

	v.details = core.NewFrame(split)
	v.details.Styler(func(s *styles.Style) {
		s.Direction = styles.Column
		s.Grow.Set(1, 1)
		s.Overflow.Set(styles.OverflowAuto)
	})
	v.details.Maker(v.makeDetails)
	split.SetSplits(2.0/12, 10.0/12)

	v.LoadPatients()
	return b
}

// MakeToolbar makes the application toolbar.
func (v *Viewer) MakeToolbar(p *tree.Plan) {
	tree.Add(p, func(w *core.Button) {
		w.SetText("Reload").SetIcon(icons.Refresh).
			SetTooltip("Reload the patient list").
			OnClick(func(e events.Event) {
				v.LoadPatients()
			})
	})
	tree.Add(p, func(w *core.Button) {
		w.SetText("Settings").SetIcon(icons.Settings).
			SetTooltip("Edit the 3D display settings").
			OnClick(func(e events.Event) {
				v.settingsDialog(w)
			})
	})
	tree.Add(p, func(w *core.Button) {
		w.SetText("Export points").SetIcon(icons.Download).
			SetTooltip("Save the vertex positions of the current model to " + PointsFile).
			OnClick(func(e events.Event) {
				if err := v.Points.SaveJSON(PointsFile); err != nil {
					core.ErrorSnackbar(w, err, "Error exporting points")
					return
				}
				core.MessageSnackbar(w, fmt.Sprintf("Exported %d points to %s", v.Points.Len(), PointsFile))
			})
	})
}

// LoadPatients fetches the patient list.
func (v *Viewer) LoadPatients() {
	async(v.list, func(ctx context.Context) ([]api.PatientSummary, error) {
		return v.Client.Patients(ctx)
	}, func(ps []api.PatientSummary, err error) {
		if err != nil {
			core.ErrorSnackbar(v.list, err, "Error loading patients")
			return
		}
		v.patients = ps
		v.filter()
	})
}

// filter shows the patients matching the search query.
func (v *Viewer) filter() {
	v.shown = FilterPatients(v.patients, v.query)
	v.names = make([]string, len(v.shown))
	for i, pi := range v.shown {
		v.names[i] = v.patients[pi].Name
	}
	v.list.SetSlice(&v.names)
	v.list.Update()
}

// SelectPatient fetches and shows the patient at the given index
// of the shown patient list.
func (v *Viewer) SelectPatient(idx int) {
	if idx < 0 || idx >= len(v.shown) {
		return
	}
	id := v.patients[v.shown[idx]].ID
	async(v.details, func(ctx context.Context) (*api.Patient, error) {
		return v.Client.Patient(ctx, id)
	}, func(p *api.Patient, err error) {
		if err != nil {
			core.ErrorSnackbar(v.details, err, "Error loading patient")
			return
		}
		v.patient = p
		v.record = RecordOf(p)
		v.models = nil
		v.details.DeleteChildren()
		v.details.Update()
	})
}

func (v *Viewer) settingsDialog(ctx core.Widget) {
	d := core.NewBody("Settings")
	core.NewForm(d).SetStruct(&v.Settings).OnChange(func(e events.Event) {
		v.ApplySettings()
	})
	d.RunWindowDialog(ctx)
}

// ApplySettings applies the current settings to all model views.
func (v *Viewer) ApplySettings() {
	for _, mv := range v.models {
		mv.applySettings()
	}
}

// async runs load on a new goroutine and then calls done with its
// result while holding the widget's async lock.
func async[T any](w core.Widget, load func(ctx context.Context) (T, error), done func(T, error)) {
	go func() {
		res, err := load(context.Background())
		errors.Log(err)
		wb := w.AsWidget()
		wb.AsyncLock()
		defer wb.AsyncUnlock()
		done(res, err)
	}()
}
