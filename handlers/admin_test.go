package handlers

import (
	"net/http"
	"testing"

	"groupfit/database"
	"groupfit/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// promoteToAdmin flips the role in the store and returns a fresh token
// carrying it
func promoteToAdmin(t *testing.T, app *fiber.App, email string) string {
	t.Helper()

	require.NoError(t, database.DB.Model(&models.User{}).
		Where("email = ?", email).
		Update("role", models.RoleAdmin).Error)

	resp := doRequest(t, app, http.MethodPost, "/api/login", "", fiber.Map{
		"email":    email,
		"password": "pw123456",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var auth AuthResponse
	decodeBody(t, resp, &auth)
	return auth.Token
}

func TestAdminOverviewRequiresAdminRole(t *testing.T) {
	app := setupApp(t)
	token, _ := registerAndLogin(t, app, "ana")

	resp := doRequest(t, app, http.MethodGet, "/api/admin/overview", token, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()
}

func TestAdminOverview(t *testing.T) {
	app := setupApp(t)
	tokenA, emailA := registerAndLogin(t, app, "ana")
	tokenB, _ := registerAndLogin(t, app, "bruno")

	groupID := createGroup(t, app, tokenA, "Runners")
	joinGroup(t, app, tokenB, groupID)
	logActivity(t, app, tokenA, groupID, "RUN", 30)
	logActivity(t, app, tokenB, groupID, "WALK", 20)

	adminToken := promoteToAdmin(t, app, emailA)

	resp := doRequest(t, app, http.MethodGet, "/api/admin/overview", adminToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Users []struct {
			Email         string `json:"email"`
			Activities    int64  `json:"activities"`
			Memberships   int64  `json:"memberships"`
			CreatedGroups int64  `json:"createdGroups"`
		} `json:"users"`
		Groups []struct {
			Name       string `json:"name"`
			Members    int    `json:"members"`
			Activities int64  `json:"activities"`
		} `json:"groups"`
		Activities   []models.ActivityResponse `json:"activities"`
		GroupMembers []struct {
			Role models.MemberRole `json:"role"`
		} `json:"groupMembers"`
	}
	decodeBody(t, resp, &body)

	require.Len(t, body.Users, 2)
	byEmail := make(map[string]int64)
	for _, u := range body.Users {
		byEmail[u.Email] = u.CreatedGroups
	}
	assert.Equal(t, int64(1), byEmail[emailA])

	require.Len(t, body.Groups, 1)
	assert.Equal(t, "Runners", body.Groups[0].Name)
	assert.Equal(t, 2, body.Groups[0].Members)
	assert.Equal(t, int64(2), body.Groups[0].Activities)

	assert.Len(t, body.Activities, 2)
	assert.Len(t, body.GroupMembers, 2)
}

func TestAuditActionsListing(t *testing.T) {
	app := setupApp(t)
	_, email := registerAndLogin(t, app, "ana")
	adminToken := promoteToAdmin(t, app, email)

	resp := doRequest(t, app, http.MethodGet, "/api/admin/audit/actions", adminToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var actions []string
	decodeBody(t, resp, &actions)
	assert.Contains(t, actions, "login")
	assert.Contains(t, actions, "group_create")
}
