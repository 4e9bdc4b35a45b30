package resultsController

import (
	"context"
	"math"
	"server/internal/logger"
	. "server/internal/models"
	"server/internal/repositories"
	"sort"
	"time"
)

// Percentage precisions used by the two result surfaces.
const (
	PublicPrecision = 1
	ReportPrecision = 2
)

// ResultsController is the read-side aggregation engine. It recomputes every
// number live from ballot rows and sorts with fixed tie-breaks, so a given
// snapshot always renders the exact same report: same order, same rounding.
type ResultsController struct {
	ballotRepo    repositories.BallotRepository
	candidateRepo repositories.CandidateRepository
	voterRepo     repositories.VoterRepository
	electionRepo  repositories.ElectionRepository
	now           func() time.Time
	log           logger.Logger
}

func New(
	ballotRepo repositories.BallotRepository,
	candidateRepo repositories.CandidateRepository,
	voterRepo repositories.VoterRepository,
	electionRepo repositories.ElectionRepository,
) *ResultsController {
	return &ResultsController{
		ballotRepo:    ballotRepo,
		candidateRepo: candidateRepo,
		voterRepo:     voterRepo,
		electionRepo:  electionRepo,
		now:           time.Now,
		log:           logger.New("ResultsController"),
	}
}

// Overall returns all candidates ranked by (votes desc, name asc) with
// percentages of the global ballot total, rounded to the given precision.
// The boolean reports whether the top two are tied with a non-zero count.
func (c *ResultsController) Overall(ctx context.Context, precision int) ([]CandidateResult, int64, bool, error) {
	rows, total, err := c.rankedRows(ctx)
	if err != nil {
		return nil, 0, false, err
	}

	for i := range rows {
		rows[i].Percentage = percentage(rows[i].Votes, total, precision)
	}
	isTie := markTies(rows)

	return rows, total, isTie, nil
}

// ByPosition groups the ranking by section. Percentages use the section's own
// ballot total as denominator; sections come back in alphabetical order so
// the grouped view is reproducible.
func (c *ResultsController) ByPosition(ctx context.Context) ([]SectionResult, error) {
	rows, _, err := c.rankedRows(ctx)
	if err != nil {
		return nil, err
	}

	grouped := make(map[string][]CandidateResult)
	var positions []string
	for _, row := range rows {
		if _, ok := grouped[row.Position]; !ok {
			positions = append(positions, row.Position)
		}
		grouped[row.Position] = append(grouped[row.Position], row)
	}
	sort.Strings(positions)

	sections := make([]SectionResult, 0, len(positions))
	for _, position := range positions {
		sectionRows := grouped[position]

		var sectionTotal int64
		for _, row := range sectionRows {
			sectionTotal += row.Votes
		}
		for i := range sectionRows {
			sectionRows[i].Percentage = percentage(sectionRows[i].Votes, sectionTotal, ReportPrecision)
		}

		section := SectionResult{
			Position:   position,
			TotalVotes: sectionTotal,
			Rows:       sectionRows,
		}
		section.IsTie = markTies(sectionRows)
		if !section.IsTie && len(sectionRows) > 0 && sectionRows[0].Votes > 0 {
			winner := sectionRows[0]
			section.Winner = &winner
		}

		sections = append(sections, section)
	}

	return sections, nil
}

// Turnout is the share of registered voters who cast at least one ballot,
// measured off ballot rows rather than the has_voted flag.
func (c *ResultsController) Turnout(ctx context.Context) (*TurnoutReport, error) {
	totalVoters, err := c.voterRepo.Count(ctx)
	if err != nil {
		return nil, err
	}

	votedCount, err := c.ballotRepo.CountDistinctVoters(ctx)
	if err != nil {
		return nil, err
	}

	report := &TurnoutReport{
		TotalVoters: totalVoters,
		VotedCount:  votedCount,
	}
	if totalVoters > 0 {
		report.Percentage = roundTo(float64(votedCount)/float64(totalVoters)*100, 2)
	}

	return report, nil
}

// Summary assembles the admin report off one snapshot: overall ranking,
// grouped sections, turnout and the elapsed whole hours since the first
// ballot.
func (c *ResultsController) Summary(ctx context.Context) (*ResultsSummary, error) {
	log := c.log.Function("Summary")

	settings, err := c.electionRepo.Get(ctx)
	if err != nil {
		return nil, err
	}

	overall, totalVotes, _, err := c.Overall(ctx, ReportPrecision)
	if err != nil {
		return nil, err
	}

	sections, err := c.ByPosition(ctx)
	if err != nil {
		return nil, err
	}

	turnout, err := c.Turnout(ctx)
	if err != nil {
		return nil, err
	}

	candidateCount, err := c.candidateRepo.Count(ctx)
	if err != nil {
		return nil, err
	}

	durationHours, err := c.durationHours(ctx)
	if err != nil {
		return nil, err
	}

	winnerName := "—"
	if len(overall) > 0 {
		winnerName = overall[0].Name
	}

	summary := &ResultsSummary{
		ElectionTitle:  settings.Title,
		WinnerName:     winnerName,
		TotalVotes:     totalVotes,
		CandidateCount: candidateCount,
		Turnout:        *turnout,
		DurationHours:  durationHours,
		Overall:        overall,
		Sections:       sections,
		GeneratedAt:    c.now(),
	}

	log.Info("results summary generated",
		"totalVotes", totalVotes, "candidates", candidateCount)
	return summary, nil
}

// durationHours is the wall-clock time elapsed since the earliest ballot, in
// whole hours; 0 when no ballot exists.
func (c *ResultsController) durationHours(ctx context.Context) (int64, error) {
	earliest, err := c.ballotRepo.EarliestBallotTime(ctx)
	if err != nil {
		return 0, err
	}
	if earliest == nil {
		return 0, nil
	}

	return int64(c.now().Sub(*earliest).Seconds()) / 3600, nil
}

// rankedRows joins candidates with their live counts and sorts by
// (votes desc, name asc). Percentages are left for the caller, whose
// denominator varies by view.
func (c *ResultsController) rankedRows(ctx context.Context) ([]CandidateResult, int64, error) {
	candidates, err := c.candidateRepo.List(ctx)
	if err != nil {
		return nil, 0, err
	}

	counts, err := c.ballotRepo.CountsByCandidate(ctx)
	if err != nil {
		return nil, 0, err
	}

	var total int64
	rows := make([]CandidateResult, 0, len(candidates))
	for _, candidate := range candidates {
		votes := counts[candidate.ID]
		total += votes
		rows = append(rows, CandidateResult{
			CandidateID: candidate.ID,
			Name:        candidate.Name,
			Nickname:    candidate.Nickname,
			Position:    candidate.Position,
			PhotoURL:    candidate.PhotoURL,
			Votes:       votes,
		})
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Votes != rows[j].Votes {
			return rows[i].Votes > rows[j].Votes
		}
		return rows[i].Name < rows[j].Name
	})

	return rows, total, nil
}

// markTies flags every candidate sharing a non-zero top count. Returns true
// when two or more are tied, in which case no winner is declared.
func markTies(rows []CandidateResult) bool {
	if len(rows) < 2 || rows[0].Votes == 0 || rows[0].Votes != rows[1].Votes {
		return false
	}

	top := rows[0].Votes
	for i := range rows {
		if rows[i].Votes == top {
			rows[i].IsTied = true
		}
	}
	return true
}

func percentage(votes, total int64, precision int) float64 {
	if total == 0 {
		return 0
	}
	return roundTo(float64(votes)/float64(total)*100, precision)
}

func roundTo(value float64, precision int) float64 {
	factor := math.Pow(10, float64(precision))
	return math.Round(value*factor) / factor
}
