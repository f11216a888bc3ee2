// Package domain contains core business types and interfaces.
//
// This file defines the FormData value object holding the fields of a
// request-for-footage document, along with its validation rules.
package domain

import (
	"regexp"
	"strings"
	"time"

	"golang.org/x/text/unicode/norm"
)

// =============================================================================
// FormData
// =============================================================================

// FormData is a snapshot of the operator-entered fields for one document
// generation run. JSON tags match the field names used by the backup format.
//
// Dates use "2006-01-02" and times use "15:04" (the values produced by
// date/time input widgets).
type FormData struct {
	NProc       string `json:"nProc"`       // Procedure number (digits, hyphens, slashes)
	Endereco    string `json:"endereco"`    // Target address
	Lat         string `json:"lat"`         // Optional latitude, 6 decimal places
	Lon         string `json:"lon"`         // Optional longitude, 6 decimal places
	DataOficio  string `json:"dataOficio"`  // Document date
	DataInicio  string `json:"dataInicio"`  // Requested period start date
	HoraInicio  string `json:"horaInicio"`  // Requested period start time
	DataFim     string `json:"dataFim"`     // Requested period end date
	HoraFim     string `json:"horaFim"`     // Requested period end time
	Observacoes string `json:"observacoes"` // Free-text notes
	RespNome    string `json:"respNome"`    // On-site contact name
	RespTel     string `json:"respTel"`     // On-site contact phone
	RespEmail   string `json:"respEmail"`   // On-site contact e-mail
}

// HasCoordinates reports whether both latitude and longitude are present.
func (f FormData) HasCoordinates() bool {
	return f.Lat != "" && f.Lon != ""
}

// Normalized returns a copy with every field NFC-normalized. Composition is
// byte-deterministic only over normalized input, so callers normalize once
// at the capture boundary.
func (f FormData) Normalized() FormData {
	n := f
	for _, p := range []*string{
		&n.NProc, &n.Endereco, &n.Lat, &n.Lon,
		&n.DataOficio, &n.DataInicio, &n.HoraInicio, &n.DataFim, &n.HoraFim,
		&n.Observacoes, &n.RespNome, &n.RespTel, &n.RespEmail,
	} {
		*p = norm.NFC.String(*p)
	}
	return n
}

// PeriodStart parses the requested period start as a local date/time.
func (f FormData) PeriodStart() (time.Time, error) {
	return time.ParseInLocation("2006-01-02 15:04", f.DataInicio+" "+f.HoraInicio, time.Local)
}

// PeriodEnd parses the requested period end as a local date/time.
func (f FormData) PeriodEnd() (time.Time, error) {
	return time.ParseInLocation("2006-01-02 15:04", f.DataFim+" "+f.HoraFim, time.Local)
}

// =============================================================================
// Validation
// =============================================================================

var (
	procPattern  = regexp.MustCompile(`^[\d\-/]+$`)
	coordPattern = regexp.MustCompile(`^-?\d+\.\d{6}$`)
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phonePattern = regexp.MustCompile(`^[()\d\s\-+]+$`)
)

// MinEnderecoLen is the minimum accepted address length.
const MinEnderecoLen = 10

// Validate runs the full validation pass over the form. It returns nil when
// every rule holds, or a *ValidationError tagging each offending field.
//
// Required fields (procedure, address, period) are the export precondition;
// optional fields are only checked for format when present.
func (f FormData) Validate() error {
	const op = "form.validate"
	var err error

	if strings.TrimSpace(f.NProc) == "" {
		err = AddFieldError(err, "nProc", "Este campo é obrigatório.")
	} else if !procPattern.MatchString(strings.TrimSpace(f.NProc)) {
		err = AddFieldError(err, "nProc", "Formato inválido. Use apenas números, hífens e barras.")
	}

	if strings.TrimSpace(f.Endereco) == "" {
		err = AddFieldError(err, "endereco", "Este campo é obrigatório.")
	} else if len(strings.TrimSpace(f.Endereco)) < MinEnderecoLen {
		err = AddFieldError(err, "endereco", "Endereço deve ter pelo menos 10 caracteres.")
	}

	for field, value := range map[string]string{
		"dataInicio": f.DataInicio,
		"horaInicio": f.HoraInicio,
		"dataFim":    f.DataFim,
		"horaFim":    f.HoraFim,
	} {
		if strings.TrimSpace(value) == "" {
			err = AddFieldError(err, field, "Este campo é obrigatório.")
		}
	}

	// Period order is only checkable once all four parts parse.
	if inicio, perr := f.PeriodStart(); perr == nil {
		if fim, perr := f.PeriodEnd(); perr == nil {
			if !fim.After(inicio) {
				err = AddFieldError(err, "dataFim", "Data/hora de término deve ser posterior ao início.")
				err = AddFieldError(err, "horaFim", "Data/hora de término deve ser posterior ao início.")
			}
		}
	}

	if verr := f.validateCoordinates(); verr != nil {
		for field, msg := range verr.Fields {
			err = AddFieldError(err, field, msg)
		}
	}

	if v := strings.TrimSpace(f.RespEmail); v != "" && !emailPattern.MatchString(v) {
		err = AddFieldError(err, "respEmail", "E-mail inválido.")
	}
	if v := strings.TrimSpace(f.RespTel); v != "" && !phonePattern.MatchString(v) {
		err = AddFieldError(err, "respTel", "Telefone deve conter apenas números, parênteses, hífens e espaços.")
	}

	if err != nil {
		ve := err.(*ValidationError)
		ve.Op = op
		return ve
	}
	return nil
}

// validateCoordinates enforces the both-or-neither rule plus the 6-decimal
// format on each coordinate.
func (f FormData) validateCoordinates() *ValidationError {
	lat := strings.TrimSpace(f.Lat)
	lon := strings.TrimSpace(f.Lon)

	if lat == "" && lon == "" {
		return nil
	}

	var err *ValidationError
	if lat != "" && lon == "" {
		err = AddFieldError(err, "lon", "Preencha tanto latitude quanto longitude, ou deixe ambos vazios.")
	}
	if lat == "" && lon != "" {
		err = AddFieldError(err, "lat", "Preencha tanto latitude quanto longitude, ou deixe ambos vazios.")
	}
	if lat != "" && !coordPattern.MatchString(lat) {
		err = AddFieldError(err, "lat", "Latitude deve ter 6 casas decimais (ex: -22.970722).")
	}
	if lon != "" && !coordPattern.MatchString(lon) {
		err = AddFieldError(err, "lon", "Longitude deve ter 6 casas decimais (ex: -43.186966).")
	}
	return err
}
