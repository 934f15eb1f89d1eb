// Package report builds the time-sheet CSV export. Generation is a pure
// function of the user and its registers so output is deterministic and
// byte-compatible with the legacy exporter consumed downstream.
package report

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"
	"time"

	"github.com/will-terra/teste-time-register/internal/domain"
)

// InProgress marks an open register's clock-out and status columns.
const (
	InProgress = "Em andamento"
	Finalized  = "Finalizado"
)

var header = []string{
	"Nome do Usuário",
	"Email",
	"Data",
	"Entrada",
	"Saída",
	"Horas Trabalhadas",
	"Status",
}

// Generate renders one row per register, in the given order, plus a
// total row when at least one register exists. Open registers show the
// in-progress marker and contribute zero to the total.
func Generate(user *domain.User, registers []domain.TimeRegister) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(header); err != nil {
		return nil, err
	}

	var total time.Duration
	for _, reg := range registers {
		clockOut := InProgress
		status := InProgress
		if reg.ClockOut != nil {
			clockOut = reg.ClockOut.Format("15:04:05")
			status = Finalized
		}
		row := []string{
			user.Name,
			user.Email,
			reg.ClockIn.Format("02/01/2006"),
			reg.ClockIn.Format("15:04:05"),
			clockOut,
			FormatDuration(reg.Duration()),
			status,
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
		total += reg.Duration()
	}

	if len(registers) > 0 {
		totalRow := []string{"", "", "", "", "", "Total: " + FormatDuration(total), ""}
		if err := w.Write(totalRow); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// FormatDuration floors to whole hours and remainder minutes, never
// showing seconds ("9h 0m").
func FormatDuration(d time.Duration) string {
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	return fmt.Sprintf("%dh %dm", h, m)
}

// Filename is the suggested download name: slugified user name plus the
// range as compact dates.
func Filename(userName string, start, end time.Time) string {
	return fmt.Sprintf("relatorio_ponto_%s_%s_%s.csv",
		slugify(userName), start.Format("20060102"), end.Format("20060102"))
}

// slugify lowercases and collapses anything non-alphanumeric into
// single dashes, like the legacy parameterize helper.
func slugify(s string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			dash = false
		default:
			if !dash && b.Len() > 0 {
				b.WriteByte('-')
				dash = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
