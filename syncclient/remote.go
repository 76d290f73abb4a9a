// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package syncclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/residencyhq/intake/models"
)

// HTTPRemote talks to the intake API for one application.
type HTTPRemote struct {
	BaseURL       string
	ApplicationID string
	Client        *http.Client
}

func NewHTTPRemote(baseURL, applicationID string) *HTTPRemote {
	return &HTTPRemote{
		BaseURL:       baseURL,
		ApplicationID: applicationID,
		Client:        http.DefaultClient,
	}
}

func (r *HTTPRemote) FetchApplication(ctx context.Context) (models.Application, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.BaseURL+"/applications?id="+r.ApplicationID, nil)
	if err != nil {
		return models.Application{}, err
	}

	resp, err := r.Client.Do(req)
	if err != nil {
		return models.Application{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return models.Application{}, fmt.Errorf("fetch application: unexpected status %d", resp.StatusCode)
	}

	var app models.Application
	if err := json.NewDecoder(resp.Body).Decode(&app); err != nil {
		return models.Application{}, err
	}
	return app, nil
}

func (r *HTTPRemote) SaveAnswers(ctx context.Context, answers map[string]string, section string) error {
	payload := models.UpdateApplicationRequest{Answers: answers}
	if section != "" {
		payload.CurrentSection = &section
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPatch, r.BaseURL+"/applications/"+r.ApplicationID, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.Client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("save answers: unexpected status %d", resp.StatusCode)
	}
	return nil
}
