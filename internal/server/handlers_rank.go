package server

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/ibhanwork/hiresight/internal/extract"
	"github.com/ibhanwork/hiresight/internal/session"
	"github.com/ibhanwork/hiresight/internal/types"
)

// maxScoreWorkers bounds concurrent resume extraction and scoring.
const maxScoreWorkers = 4

// handleRank accepts a job description plus one or more resume files
// (PDF, DOCX, TXT, or a ZIP of those), scores every resume against the
// job, and persists the ranking into a new session directory.
func (s *Server) handleRank(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes)
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		s.errorResponse(w, &ErrValidation{Field: "body", Message: "invalid multipart form: " + err.Error()})
		return
	}

	role := strings.TrimSpace(r.FormValue("role"))
	if role == "" {
		s.errorResponse(w, &ErrValidation{Field: "role", Message: "role is required"})
		return
	}
	skills := splitSkills(r.FormValue("skills"))
	if len(skills) == 0 {
		s.errorResponse(w, &ErrValidation{Field: "skills", Message: "at least one skill is required"})
		return
	}

	files := r.MultipartForm.File["file"]
	if len(files) == 0 {
		s.errorResponse(w, &ErrValidation{Field: "file", Message: "at least one resume file is required"})
		return
	}

	meta, err := s.sessions.Create(r.FormValue("company_id"), r.FormValue("job_id"), role)
	if err != nil {
		s.errorResponse(w, err)
		return
	}
	paths := s.sessions.Paths(meta.SessionID)

	resumePaths, err := s.saveUploads(files, paths.Resumes)
	if err != nil {
		s.errorResponse(w, err)
		return
	}
	if len(resumePaths) == 0 {
		s.errorResponse(w, &ErrValidation{Field: "file", Message: "no supported resume files found in upload"})
		return
	}

	jobText := buildJobText(role, skills, r.FormValue("experience"), r.FormValue("additional"))

	candidates, err := s.scoreResumes(r, jobText, skills, resumePaths)
	if err != nil {
		s.errorResponse(w, err)
		return
	}

	if err := writeResultsCSV(paths.ResultsCSV, candidates); err != nil {
		s.errorResponse(w, err)
		return
	}

	updated, err := s.sessions.Update(meta.SessionID, func(m *session.Metadata) {
		m.Status = "complete"
		m.CandidatesProcessed = len(candidates)
		m.LinkedInScoresGenerated = len(candidates)
	})
	if err != nil {
		s.errorResponse(w, err)
		return
	}
	s.indexSession(r, updated)

	s.log.Info("ranking complete",
		zap.String("session_id", meta.SessionID),
		zap.String("role", role),
		zap.Int("candidates", len(candidates)))

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"session_id": meta.SessionID,
		"role":       role,
		"count":      len(candidates),
		"candidates": candidates,
	})
}

// handleAnalyze scores a single resume against a job description and
// returns a detailed report without creating a session.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes)
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		s.errorResponse(w, &ErrValidation{Field: "body", Message: "invalid multipart form: " + err.Error()})
		return
	}

	role := strings.TrimSpace(r.FormValue("role"))
	if role == "" {
		s.errorResponse(w, &ErrValidation{Field: "role", Message: "role is required"})
		return
	}
	skills := splitSkills(r.FormValue("skills"))
	if len(skills) == 0 {
		s.errorResponse(w, &ErrValidation{Field: "skills", Message: "at least one skill is required"})
		return
	}

	files := r.MultipartForm.File["file"]
	if len(files) != 1 {
		s.errorResponse(w, &ErrValidation{Field: "file", Message: "exactly one resume file is required"})
		return
	}

	tmpDir, err := os.MkdirTemp(s.cfg.UploadDir, "analyze_")
	if err != nil {
		s.errorResponse(w, fmt.Errorf("failed to create scratch dir: %w", err))
		return
	}
	defer os.RemoveAll(tmpDir)

	resumePaths, err := s.saveUploads(files, tmpDir)
	if err != nil {
		s.errorResponse(w, err)
		return
	}
	if len(resumePaths) != 1 {
		s.errorResponse(w, &ErrValidation{Field: "file", Message: "unsupported resume format"})
		return
	}

	text, err := extract.File(resumePaths[0])
	if err != nil {
		s.errorResponse(w, err)
		return
	}

	jobText := buildJobText(role, skills, r.FormValue("experience"), r.FormValue("additional"))
	candidate := scoreResume(s, jobText, skills, text, filepath.Base(resumePaths[0]))

	var missing []string
	for _, skill := range skills {
		if !containsFold(candidate.Skills, skill) {
			missing = append(missing, skill)
		}
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"role":           role,
		"candidate":      candidate,
		"missing_skills": missing,
		"similarity":     candidate.MatchScore,
	})
}

// saveUploads writes multipart files into destDir, expanding ZIP archives
// in place, and returns the paths of all supported resume files.
func (s *Server) saveUploads(files []*multipart.FileHeader, destDir string) ([]string, error) {
	var resumes []string
	for _, fh := range files {
		name := filepath.Base(fh.Filename)
		if name == "" || name == "." {
			continue
		}
		dest := filepath.Join(destDir, name)
		if err := saveMultipartFile(fh, dest); err != nil {
			return nil, err
		}

		if strings.EqualFold(filepath.Ext(name), ".zip") {
			limits := extract.DefaultZipLimits()
			limits.MaxEntries = s.cfg.MaxZipEntries
			limits.MaxFileBytes = s.cfg.MaxZipFileBytes
			extracted, err := extract.ExpandZip(dest, destDir, limits)
			if err != nil {
				return nil, err
			}
			resumes = append(resumes, extracted...)
			continue
		}
		if extract.SupportedResume(name) {
			resumes = append(resumes, dest)
		}
	}
	return resumes, nil
}

func saveMultipartFile(fh *multipart.FileHeader, dest string) error {
	src, err := fh.Open()
	if err != nil {
		return fmt.Errorf("failed to open upload %s: %w", fh.Filename, err)
	}
	defer src.Close()

	out, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("failed to save upload %s: %w", fh.Filename, err)
	}
	defer out.Close()

	if _, err := io.Copy(out, src); err != nil {
		return fmt.Errorf("failed to write upload %s: %w", fh.Filename, err)
	}
	return nil
}

// scoreResumes extracts and scores resumes concurrently, then sorts the
// results by descending score. Extraction failures skip the file with a
// warning rather than failing the whole batch.
func (s *Server) scoreResumes(r *http.Request, jobText string, skills []string, resumePaths []string) ([]types.RankedResume, error) {
	var (
		mu         sync.Mutex
		candidates []types.RankedResume
	)

	g, _ := errgroup.WithContext(r.Context())
	g.SetLimit(maxScoreWorkers)
	for _, path := range resumePaths {
		g.Go(func() error {
			text, err := extract.File(path)
			if err != nil {
				s.log.Warn("skipping unreadable resume",
					zap.String("file", filepath.Base(path)), zap.Error(err))
				return nil
			}
			candidate := scoreResume(s, jobText, skills, text, filepath.Base(path))
			mu.Lock()
			candidates = append(candidates, candidate)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Score > candidates[j].Score
	})
	return candidates, nil
}

// scoreResume builds the ranked entry for one resume text.
func scoreResume(s *Server, jobText string, skills []string, text, filename string) types.RankedResume {
	score := round2(s.scorer.Score(jobText, text) * 100)

	var found []string
	lower := strings.ToLower(text)
	for _, skill := range skills {
		if strings.Contains(lower, strings.ToLower(skill)) {
			found = append(found, skill)
		}
	}

	return types.RankedResume{
		Name:       extract.CandidateName(text, filename),
		Score:      score,
		MatchScore: score,
		Skills:     found,
		Note:       fmt.Sprintf("Matched %d/%d required skills", len(found), len(skills)),
		Summary:    fmt.Sprintf("Resume score: %g/100", score),
		Filename:   filename,
	}
}

// writeResultsCSV persists the ranking in the layout the leaderboard
// loader reads back.
func writeResultsCSV(path string, candidates []types.RankedResume) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create results file: %w", err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	if err := cw.Write([]string{"candidate_name", "resume_score", "github_username"}); err != nil {
		return fmt.Errorf("failed to write results header: %w", err)
	}
	for _, c := range candidates {
		row := []string{c.Name, fmt.Sprintf("%.2f", c.Score), ""}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write results row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func buildJobText(role string, skills []string, experience, additional string) string {
	parts := []string{role, strings.Join(skills, " ")}
	if experience != "" {
		parts = append(parts, experience)
	}
	if additional != "" {
		parts = append(parts, additional)
	}
	return strings.Join(parts, " ")
}

func splitSkills(raw string) []string {
	var skills []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			skills = append(skills, trimmed)
		}
	}
	return skills
}

func containsFold(haystack []string, needle string) bool {
	for _, h := range haystack {
		if strings.EqualFold(h, needle) {
			return true
		}
	}
	return false
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
