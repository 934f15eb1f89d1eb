package report

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/will-terra/teste-time-register/internal/domain"
)

func closedRegister(day, inHour, outHour int) domain.TimeRegister {
	in := time.Date(2025, 9, day, inHour, 0, 0, 0, time.UTC)
	out := time.Date(2025, 9, day, outHour, 0, 0, 0, time.UTC)
	return domain.TimeRegister{UserID: 1, ClockIn: in, ClockOut: &out}
}

func testUser() *domain.User {
	return &domain.User{ID: 1, Name: "Maria Silva", Email: "maria@example.com"}
}

func TestGenerateWorkedHoursAndTotal(t *testing.T) {
	regs := []domain.TimeRegister{
		closedRegister(1, 8, 17),
		closedRegister(2, 9, 18),
	}

	out, err := Generate(testUser(), regs)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(string(out), "\n"), "\n")
	require.Len(t, lines, 4) // header + 2 rows + total

	assert.Equal(t, "Nome do Usuário,Email,Data,Entrada,Saída,Horas Trabalhadas,Status", lines[0])
	assert.Equal(t, "Maria Silva,maria@example.com,01/09/2025,08:00:00,17:00:00,9h 0m,Finalizado", lines[1])
	assert.Equal(t, "Maria Silva,maria@example.com,02/09/2025,09:00:00,18:00:00,9h 0m,Finalizado", lines[2])
	assert.Equal(t, ",,,,,Total: 18h 0m,", lines[3])
}

func TestGenerateNoRegisters(t *testing.T) {
	out, err := Generate(testUser(), nil)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(string(out), "\n"), "\n")
	require.Len(t, lines, 1)
	assert.Equal(t, "Nome do Usuário,Email,Data,Entrada,Saída,Horas Trabalhadas,Status", lines[0])
	assert.NotContains(t, string(out), "Total:")
}

func TestGenerateOpenRegister(t *testing.T) {
	open := domain.TimeRegister{
		UserID:  1,
		ClockIn: time.Date(2025, 9, 3, 8, 30, 0, 0, time.UTC),
	}
	regs := []domain.TimeRegister{closedRegister(1, 8, 17), open}

	out, err := Generate(testUser(), regs)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(string(out), "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "Maria Silva,maria@example.com,03/09/2025,08:30:00,Em andamento,0h 0m,Em andamento", lines[2])
	// Open register contributes nothing to the total.
	assert.Equal(t, ",,,,,Total: 9h 0m,", lines[3])
}

func TestGenerateDeterministic(t *testing.T) {
	regs := []domain.TimeRegister{closedRegister(1, 8, 17), closedRegister(2, 9, 18)}
	a, err := Generate(testUser(), regs)
	require.NoError(t, err)
	b, err := Generate(testUser(), regs)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestFormatDuration(t *testing.T) {
	cases := []struct {
		d    time.Duration
		want string
	}{
		{0, "0h 0m"},
		{9 * time.Hour, "9h 0m"},
		{7*time.Hour + 45*time.Minute, "7h 45m"},
		{30*time.Minute + 59*time.Second, "0h 30m"}, // seconds floored away
		{26*time.Hour + 5*time.Minute, "26h 5m"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, FormatDuration(tc.d))
	}
}

func TestFilename(t *testing.T) {
	start := time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 9, 30, 0, 0, 0, 0, time.UTC)
	got := Filename("Maria Silva", start, end)
	assert.Equal(t, "relatorio_ponto_maria-silva_20250901_20250930.csv", got)
}

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Maria Silva":    "maria-silva",
		"  João  ":       "jo-o",
		"A--B":           "a-b",
		"user@corp.com!": "user-corp-com",
	}
	for in, want := range cases {
		assert.Equal(t, want, slugify(in), "slugify(%q)", in)
	}
}
