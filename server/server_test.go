// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package server

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"cogentcore.org/core/base/iox/jsonx"
	"github.com/google/uuid"
	"github.com/laralab/heartanalyzer/analysis"
	"github.com/laralab/heartanalyzer/api"
	"github.com/laralab/heartanalyzer/gltfx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) (*httptest.Server, *api.Client) {
	dir := t.TempDir()
	require.NoError(t, Seed(dir))
	ts := httptest.NewServer(New(NewSampleStore(), dir))
	t.Cleanup(ts.Close)
	return ts, api.NewClient(ts.URL)
}

func TestPatients(t *testing.T) {
	_, c := newTestServer(t)
	ctx := context.Background()

	ps, err := c.Patients(ctx)
	require.NoError(t, err)
	require.Len(t, ps, 2)
	assert.Equal(t, "John Doe", ps[0].Name)
	assert.Equal(t, JohnDoe.String(), ps[0].ID)
	assert.Equal(t, "1960-07-15", ps[0].DateOfBirth)
	href, err := ps[0].Href("attachments")
	require.NoError(t, err)
	assert.Equal(t, "/attachments/?owner_id="+JohnDoe.String(), href)

	p, err := c.Patient(ctx, JohnDoe.String())
	require.NoError(t, err)
	assert.Equal(t, "male", p.Sex)
	assert.Equal(t, "Dr. Carla Clipper", p.AssignedPhysician)
	assert.Equal(t, "Echo shows severe mitral stenosis.", p.ClinicalNotes)
	require.Len(t, p.Attachments, 2)
	assert.Equal(t, "measurements/mitral-annulus", p.Attachments[0].Name)
	assert.Equal(t, api.ViewMeasurements, p.Attachments[0].View())
	assert.Equal(t, api.ViewImage, p.Attachments[1].View())

	p, err = c.Patient(ctx, JaneDoe.String())
	require.NoError(t, err)
	require.Len(t, p.Attachments, 1)
	assert.Equal(t, api.ViewModel, p.Attachments[0].View())
}

func TestStatusCodes(t *testing.T) {
	ts, _ := newTestServer(t)
	client := &http.Client{CheckRedirect: func(*http.Request, []*http.Request) error {
		return http.ErrUseLastResponse
	}}
	tests := []struct {
		path string
		code int
	}{
		{"/", http.StatusMovedPermanently},
		{"/patients/", http.StatusOK},
		{"/patients/" + uuid.NewString(), http.StatusNotFound},
		{"/patients/not-a-uuid", http.StatusUnprocessableEntity},
		{"/attachments/", http.StatusOK},
		{"/attachments/?owner_id=42", http.StatusUnprocessableEntity},
		{"/attachments/" + ScreenshotID.String(), http.StatusOK},
		{"/attachments/" + uuid.NewString(), http.StatusNotFound},
		{"/static/data/missing.json", http.StatusNotFound},
		{"/nothing/here", http.StatusNotFound},
	}
	for _, test := range tests {
		resp, err := client.Get(ts.URL + test.path)
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, test.code, resp.StatusCode, test.path)
		assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"), test.path)
	}
}

func TestPreflight(t *testing.T) {
	ts, _ := newTestServer(t)
	req, err := http.NewRequest(http.MethodOptions, ts.URL+"/patients/", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "http://localhost:3000")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestAttachmentLinks(t *testing.T) {
	_, c := newTestServer(t)
	var as []api.Attachment
	require.NoError(t, c.JSON(context.Background(), "/attachments/", &as))
	require.Len(t, as, 3)
	a := as[2]
	assert.Equal(t, AnatomicalModelID.String(), a.ID)
	data, err := a.DataLink()
	require.NoError(t, err)
	assert.Equal(t, "/static/data/"+AnatomicalModelID.String()+".gltf", data)
	owner, err := a.Href("owner")
	require.NoError(t, err)
	assert.Equal(t, "/patients/"+JaneDoe.String(), owner)
}

func TestData(t *testing.T) {
	_, c := newTestServer(t)
	ctx := context.Background()
	p, err := c.Patient(ctx, JohnDoe.String())
	require.NoError(t, err)

	pl, err := c.AttachmentData(ctx, &p.Attachments[0])
	require.NoError(t, err)
	assert.Equal(t, api.MediaAnalysisPrimitives, pl.ContentType)
	doc, err := analysis.Parse(pl.Data)
	require.NoError(t, err)
	spline, err := doc.Spline(analysis.DefaultSplineKey)
	require.NoError(t, err)
	assert.Len(t, spline, SplinePoints)
	assert.Len(t, doc.Rows(), 6)

	pl, err = c.AttachmentData(ctx, &p.Attachments[1])
	require.NoError(t, err)
	assert.Equal(t, api.MediaJPEG, pl.ContentType)
	assert.Equal(t, "image/jpeg", pl.Sniff())
	img, err := pl.Image()
	require.NoError(t, err)
	assert.Equal(t, 320, img.Bounds().Dx())
}

func TestModel(t *testing.T) {
	_, c := newTestServer(t)
	ctx := context.Background()
	a := &api.Attachment{}
	require.NoError(t, c.JSON(ctx, "/attachments/"+AnatomicalModelID.String(), a))
	href, err := a.DataLink()
	require.NoError(t, err)

	doc, err := gltfx.Load(ctx, c, href)
	require.NoError(t, err)
	pts, err := gltfx.ExtractPoints(doc)
	require.NoError(t, err)
	// each leaflet has a center plus half the annulus and its end point
	assert.Len(t, pts, 2*(SplinePoints/2+2))
}

func TestMediaType(t *testing.T) {
	assert.Equal(t, api.MediaGLTF, MediaType("x.gltf", nil))
	assert.Equal(t, api.MediaJPEG, MediaType("x.jpg", nil))
	png := []byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a, 0x1a, 0x0a, 0, 0, 0, 0}
	assert.Equal(t, "image/png", MediaType("x.bin", png))
	assert.Equal(t, "application/octet-stream", MediaType("x.bin", []byte("hello")))
}

func TestSeedKeepsExisting(t *testing.T) {
	dir := t.TempDir()
	fn := filepath.Join(dir, MeasurementsID.String()+".json")
	require.NoError(t, os.WriteFile(fn, []byte(`{}`), 0644))
	require.NoError(t, Seed(dir))
	b, err := os.ReadFile(fn)
	require.NoError(t, err)
	assert.Equal(t, `{}`, string(b))

	var doc analysis.Document
	b, err = SampleMeasurements()
	require.NoError(t, err)
	require.NoError(t, jsonx.Read(&doc, bytes.NewReader(b)))
	assert.Contains(t, doc, analysis.DefaultSplineKey)
}

func TestStoreSummaryProjection(t *testing.T) {
	st := NewSampleStore()
	ps, err := st.Patients()
	require.NoError(t, err)
	require.Len(t, ps, 2)
	assert.Equal(t, "Jane Doe", ps[1].Name)
	assert.Equal(t, JaneDoe.String(), ps[1].ID)
	assert.Len(t, ps[1].Links, 2)

	ps[1].Links[0].Href = "changed"
	p, err := st.Patient(JaneDoe)
	require.NoError(t, err)
	assert.Equal(t, "/patients/"+JaneDoe.String(), p.Links[0].Href)

	_, err = st.Patient(uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}
