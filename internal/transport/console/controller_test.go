package console

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"book_catalog/config"
	"book_catalog/internal/lib/clock"
	"book_catalog/internal/repository"
	"book_catalog/internal/service/catalogService"

	"github.com/stretchr/testify/suite"
)

type controllerSuite struct {
	suite.Suite

	cfg      *config.Config
	filePath string
	now      time.Time
}

func TestControllerSuite(t *testing.T) {
	suite.Run(t, new(controllerSuite))
}

func (s *controllerSuite) SetupTest() {
	s.cfg = &config.Config{
		Lending: config.Lending{
			LoanDays:           14,
			FinePerDay:         5,
			FineCurrency:       "Rs.",
			RejectDoubleBorrow: true,
		},
	}
	s.filePath = filepath.Join(s.T().TempDir(), "books_data.json")
	s.now = time.Date(2026, time.October, 19, 10, 0, 0, 0, time.UTC)
}

// run feeds the lines to a fresh controller over the same catalog file and
// returns everything printed.
func (s *controllerSuite) run(lines ...string) string {
	ctx := context.Background()
	svc, err := catalogService.New(ctx, s.cfg, repository.NewJSONFile(s.filePath), clock.Fixed(s.now))
	s.Require().NoError(err)

	out := &bytes.Buffer{}
	ctrl := NewController(s.cfg, svc, strings.NewReader(strings.Join(lines, "\n")+"\n"), out)
	s.Require().NoError(ctrl.Run(ctx))

	return out.String()
}

func (s *controllerSuite) Test_DuneScenario() {
	out := s.run(
		"1", "Dune", "Herbert", "1965", "SF", "yes", "5", "Great",
		"4", "title",
		"2", "Dune", "alice",
		"3", "Dune", "alice",
		"5",
	)

	s.Contains(out, bookAdded)
	s.Contains(out, "1. Dune by Herbert (1965) - SF - Read")
	s.Equal(1, strings.Count(out, " - Read"))
	s.Contains(out, "Book borrowed successfully! Due date: 2026-11-02")
	s.Contains(out, "Book returned successfully! Fine: Rs.0")
	s.Contains(out, goodbye)

	content, err := os.ReadFile(s.filePath)
	s.Require().NoError(err)
	s.Contains(string(content), `"users": {}`)
	s.Contains(string(content), `"due_date": null`)
}

func (s *controllerSuite) Test_InvalidRatingReprompts() {
	out := s.run("1", "Dune", "Herbert", "1965", "SF", "yes", "five", "9", "4", "Great", "5")

	s.Equal(2, strings.Count(out, invalidRating))
	s.Contains(out, bookAdded)
}

func (s *controllerSuite) Test_UnreadBookSkipsRating() {
	out := s.run("1", "Emma", "Austen", "1815", "Novel", "no", "4", "author", "5")

	s.NotContains(out, promptRating)
	s.Contains(out, "1. Emma by Austen (1815) - Novel - Unread")
}

func (s *controllerSuite) Test_OnlyYesMarksBookRead() {
	out := s.run("1", "Emma", "Austen", "1815", "Novel", "y", "4", "title", "5")

	s.NotContains(out, promptRating)
	s.Contains(out, "1. Emma by Austen (1815) - Novel - Unread")
}

func (s *controllerSuite) Test_Errors() {
	out := s.run(
		"4",
		"2", "Ulysses", "alice",
		"3", "Ulysses", "alice",
		"9",
		"5",
	)

	s.Contains(out, emptyCollection)
	s.Contains(out, bookNotFound)
	s.Contains(out, bookNotBorrowed)
	s.Contains(out, invalidChoice)
}

func (s *controllerSuite) Test_UnknownSortOption() {
	out := s.run("1", "Emma", "Austen", "1815", "Novel", "no", "4", "rating", "5")

	s.Contains(out, unknownSortOption)
}

func (s *controllerSuite) Test_LateReturnAcrossSessions() {
	s.run("1", "Dune", "Herbert", "1965", "SF", "no", "2", "Dune", "alice", "5")

	s.now = time.Date(2026, time.November, 5, 18, 0, 0, 0, time.UTC)
	out := s.run("3", "dune", "alice", "5")

	s.Contains(out, "Book returned successfully! Fine: Rs.15")
}

func (s *controllerSuite) Test_EndOfInputSaves() {
	out := s.run("1", "Dune", "Herbert", "1965", "SF", "no")

	s.Contains(out, goodbye)
	_, err := os.Stat(s.filePath)
	s.NoError(err)
}

func (s *controllerSuite) Test_CorruptFileStartsEmpty() {
	s.Require().NoError(os.WriteFile(s.filePath, []byte("{broken"), 0o644))

	out := s.run("4", "5")

	s.Contains(out, emptyCollection)
	content, err := os.ReadFile(s.filePath)
	s.Require().NoError(err)
	s.Equal("{\n    \"books\": [],\n    \"users\": {}\n}", string(content))
}
