package integration

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/bagaswara/porto/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testDB *TestDB

func TestMain(m *testing.M) {
	if os.Getenv("SKIP_INTEGRATION") != "" {
		os.Exit(0)
	}

	ctx := context.Background()

	var err error
	testDB, err = SetupTestDatabase(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to set up test database: %v\n", err)
		os.Exit(1)
	}

	code := m.Run()

	testDB.Teardown(ctx)
	os.Exit(code)
}

func cleanup(t *testing.T) {
	t.Helper()
	require.NoError(t, testDB.CleanupTables(context.Background()))
}

func TestProjectRepository_CRUD(t *testing.T) {
	cleanup(t)
	ctx := context.Background()
	projects, _, _, _ := InitializeRepositories(testDB.DB)

	created, err := projects.Create(ctx, TestProject("gate-service"))
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	assert.Equal(t, "gate-service", created.Slug)
	assert.Equal(t, []string{"Go", "PostgreSQL"}, created.Technologies)

	bySlug, err := projects.GetBySlug(ctx, "gate-service")
	require.NoError(t, err)
	assert.Equal(t, created.ID, bySlug.ID)

	created.Title = "Renamed"
	created.Featured = true
	updated, err := projects.Update(ctx, created.ID, created)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Title)
	assert.True(t, updated.Featured)

	count, err := projects.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	require.NoError(t, projects.Delete(ctx, created.ID))

	_, err = projects.GetByID(ctx, created.ID)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestProjectRepository_DuplicateSlugConflicts(t *testing.T) {
	cleanup(t)
	ctx := context.Background()
	projects, _, _, _ := InitializeRepositories(testDB.DB)

	_, err := projects.Create(ctx, TestProject("same-slug"))
	require.NoError(t, err)

	_, err = projects.Create(ctx, TestProject("same-slug"))
	assert.ErrorIs(t, err, models.ErrConflict)
}

func TestProjectRepository_ListOrdersFeaturedFirst(t *testing.T) {
	cleanup(t)
	ctx := context.Background()
	projects, _, _, _ := InitializeRepositories(testDB.DB)

	plain := TestProject("plain")
	plain.OrderIndex = 0
	_, err := projects.Create(ctx, plain)
	require.NoError(t, err)

	featured := TestProject("featured")
	featured.Featured = true
	featured.OrderIndex = 5
	_, err = projects.Create(ctx, featured)
	require.NoError(t, err)

	listed, err := projects.List(ctx)
	require.NoError(t, err)
	require.Len(t, listed, 2)
	assert.Equal(t, "featured", listed[0].Slug)
}

func TestProjectRepository_DeleteMissing(t *testing.T) {
	cleanup(t)
	ctx := context.Background()
	projects, _, _, _ := InitializeRepositories(testDB.DB)

	err := projects.Delete(ctx, "00000000-0000-0000-0000-000000000000")
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestSkillRepository_VisibilityFilter(t *testing.T) {
	cleanup(t)
	ctx := context.Background()
	_, _, skills, _ := InitializeRepositories(testDB.DB)

	visible := TestSkill("Go", models.SkillCategoryBackend)
	_, err := skills.Create(ctx, visible)
	require.NoError(t, err)

	hidden := TestSkill("COBOL", models.SkillCategoryOthers)
	hidden.IsVisible = false
	_, err = skills.Create(ctx, hidden)
	require.NoError(t, err)

	all, err := skills.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	public, err := skills.ListVisible(ctx)
	require.NoError(t, err)
	require.Len(t, public, 1)
	assert.Equal(t, "Go", public[0].Name)
}

func TestExperienceRepository_CurrentPositionsFirst(t *testing.T) {
	cleanup(t)
	ctx := context.Background()
	_, experience, _, _ := InitializeRepositories(testDB.DB)

	past := &models.Experience{
		Company:     "Old Corp",
		Position:    "Engineer",
		Description: "Built things",
		StartDate:   mustDate(t, "2019-01-01"),
		IsCurrent:   false,
	}
	end := mustDate(t, "2021-06-30")
	past.EndDate = &end
	_, err := experience.Create(ctx, past)
	require.NoError(t, err)

	current := &models.Experience{
		Company:     "New Corp",
		Position:    "Senior Engineer",
		Description: "Builds things",
		StartDate:   mustDate(t, "2021-07-01"),
		IsCurrent:   true,
	}
	_, err = experience.Create(ctx, current)
	require.NoError(t, err)

	listed, err := experience.List(ctx)
	require.NoError(t, err)
	require.Len(t, listed, 2)
	assert.Equal(t, "New Corp", listed[0].Company)
}

func TestCertificateRepository_CRUD(t *testing.T) {
	cleanup(t)
	ctx := context.Background()
	_, _, _, certificates := InitializeRepositories(testDB.DB)

	issue := mustDate(t, "2025-03-15")
	created, err := certificates.Create(ctx, &models.Certificate{
		Title:     "Cloud Practitioner",
		Provider:  "AWS",
		IssueDate: &issue,
	})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)

	fetched, err := certificates.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Cloud Practitioner", fetched.Title)

	require.NoError(t, certificates.Delete(ctx, created.ID))
}

func mustDate(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.Parse("2006-01-02", value)
	require.NoError(t, err)
	return parsed
}
