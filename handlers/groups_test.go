package handlers

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"groupfit/database"
	"groupfit/models"
	"groupfit/services"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type groupListBody struct {
	Groups []models.GroupResponse `json:"groups"`
	Count  int                    `json:"count"`
}

func TestCreateGroupMakesCreatorAdmin(t *testing.T) {
	app := setupApp(t)
	token, email := registerAndLogin(t, app, "ana")

	groupID := createGroup(t, app, token, "Runners")

	resp := doRequest(t, app, http.MethodGet, "/api/groups", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body groupListBody
	decodeBody(t, resp, &body)
	require.Equal(t, 1, body.Count)

	group := body.Groups[0]
	assert.Equal(t, groupID, group.ID)
	assert.Equal(t, "Runners", group.Name)
	assert.True(t, group.IsMember)
	assert.True(t, group.IsCreator)
	assert.Equal(t, 1, group.MemberCount)
	require.Len(t, group.Members, 1)
	assert.Equal(t, email, group.Members[0].User.Email)
	assert.Equal(t, models.MemberRoleAdmin, group.Members[0].Role)
}

func TestCreateGroupRequiresName(t *testing.T) {
	app := setupApp(t)
	token, _ := registerAndLogin(t, app, "ana")

	resp := doRequest(t, app, http.MethodPost, "/api/groups", token, fiber.Map{
		"description": "no name",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

func TestListGroupsMembershipFlags(t *testing.T) {
	app := setupApp(t)
	tokenA, _ := registerAndLogin(t, app, "ana")
	tokenB, _ := registerAndLogin(t, app, "bruno")

	createGroup(t, app, tokenA, "Runners")

	// Without showAll B sees nothing
	resp := doRequest(t, app, http.MethodGet, "/api/groups", tokenB, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var mine groupListBody
	decodeBody(t, resp, &mine)
	assert.Zero(t, mine.Count)

	// With showAll B sees the group, flagged as neither member nor creator
	resp = doRequest(t, app, http.MethodGet, "/api/groups?showAll=true", tokenB, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var all groupListBody
	decodeBody(t, resp, &all)
	require.Equal(t, 1, all.Count)
	assert.False(t, all.Groups[0].IsMember)
	assert.False(t, all.Groups[0].IsCreator)
}

func TestJoinGroup(t *testing.T) {
	app := setupApp(t)
	tokenA, _ := registerAndLogin(t, app, "ana")
	tokenB, _ := registerAndLogin(t, app, "bruno")

	groupID := createGroup(t, app, tokenA, "Runners")
	joinGroup(t, app, tokenB, groupID)

	resp := doRequest(t, app, http.MethodGet, "/api/groups", tokenB, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var body groupListBody
	decodeBody(t, resp, &body)
	require.Equal(t, 1, body.Count)
	assert.True(t, body.Groups[0].IsMember)
	assert.False(t, body.Groups[0].IsCreator)
	assert.Equal(t, 2, body.Groups[0].MemberCount)
}

func TestJoinGroupTwiceConflicts(t *testing.T) {
	app := setupApp(t)
	tokenA, _ := registerAndLogin(t, app, "ana")
	tokenB, _ := registerAndLogin(t, app, "bruno")

	groupID := createGroup(t, app, tokenA, "Runners")
	joinGroup(t, app, tokenB, groupID)

	resp := doRequest(t, app, http.MethodPost, fmt.Sprintf("/api/groups/%d/join", groupID), tokenB, nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	resp.Body.Close()
}

func TestJoinGroupStoreFailureIsNotAConflict(t *testing.T) {
	app := setupApp(t)
	tokenA, _ := registerAndLogin(t, app, "ana")
	tokenB, _ := registerAndLogin(t, app, "bruno")
	groupID := createGroup(t, app, tokenA, "Runners")

	// With the membership table gone the insert fails for a reason that
	// has nothing to do with the unique index
	require.NoError(t, database.DB.Migrator().DropTable(&models.GroupMember{}))

	resp := doRequest(t, app, http.MethodPost, fmt.Sprintf("/api/groups/%d/join", groupID), tokenB, nil)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	resp.Body.Close()
}

func TestJoinMissingGroup(t *testing.T) {
	app := setupApp(t)
	token, _ := registerAndLogin(t, app, "ana")

	resp := doRequest(t, app, http.MethodPost, "/api/groups/9999/join", token, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestLeaveGroup(t *testing.T) {
	app := setupApp(t)
	tokenA, _ := registerAndLogin(t, app, "ana")
	tokenB, _ := registerAndLogin(t, app, "bruno")

	groupID := createGroup(t, app, tokenA, "Runners")
	joinGroup(t, app, tokenB, groupID)

	// A member can leave
	resp := doRequest(t, app, http.MethodPost, fmt.Sprintf("/api/groups/%d/leave", groupID), tokenB, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	// Leaving again is a no-membership error
	resp = doRequest(t, app, http.MethodPost, fmt.Sprintf("/api/groups/%d/leave", groupID), tokenB, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	// The creator can never leave
	resp = doRequest(t, app, http.MethodPost, fmt.Sprintf("/api/groups/%d/leave", groupID), tokenA, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()
}

func TestDeleteGroup(t *testing.T) {
	app := setupApp(t)
	tokenA, _ := registerAndLogin(t, app, "ana")
	tokenB, _ := registerAndLogin(t, app, "bruno")

	groupID := createGroup(t, app, tokenA, "Runners")
	joinGroup(t, app, tokenB, groupID)
	logActivity(t, app, tokenA, groupID, "RUN", 30)
	logActivity(t, app, tokenB, groupID, "WALK", 20)

	// Only the creator can delete
	resp := doRequest(t, app, http.MethodPost, fmt.Sprintf("/api/groups/%d/delete", groupID), tokenB, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()

	resp = doRequest(t, app, http.MethodPost, fmt.Sprintf("/api/groups/%d/delete", groupID), tokenA, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	// Cascade removed memberships and activities with the group
	var count int64
	database.DB.Model(&models.GroupMember{}).Where("group_id = ?", groupID).Count(&count)
	assert.Zero(t, count)
	database.DB.Model(&models.Activity{}).Where("group_id = ?", groupID).Count(&count)
	assert.Zero(t, count)

	// Neither user sees it anymore
	for _, token := range []string{tokenA, tokenB} {
		resp = doRequest(t, app, http.MethodGet, "/api/groups?showAll=true", token, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		var body groupListBody
		decodeBody(t, resp, &body)
		assert.Zero(t, body.Count)
	}
}

func TestDeleteMissingGroup(t *testing.T) {
	app := setupApp(t)
	token, _ := registerAndLogin(t, app, "ana")

	resp := doRequest(t, app, http.MethodPost, "/api/groups/9999/delete", token, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestWeeklyActivities(t *testing.T) {
	app := setupApp(t)
	tokenA, _ := registerAndLogin(t, app, "ana")
	tokenB, _ := registerAndLogin(t, app, "bruno")
	tokenC, _ := registerAndLogin(t, app, "carla")

	groupID := createGroup(t, app, tokenA, "Runners")
	joinGroup(t, app, tokenB, groupID)

	logActivity(t, app, tokenA, groupID, "RUN", 30)
	logActivity(t, app, tokenA, groupID, "GYM", 45)
	logActivity(t, app, tokenB, groupID, "WALK", 20)

	// Non-members are rejected
	resp := doRequest(t, app, http.MethodGet, fmt.Sprintf("/api/groups/%d/weekly-activities", groupID), tokenC, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()

	resp = doRequest(t, app, http.MethodGet, fmt.Sprintf("/api/groups/%d/weekly-activities?viewType=monthly", groupID), tokenA, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Activities map[string][]services.DayUserActivity `json:"activities"`
	}
	decodeBody(t, resp, &body)

	today := time.Now().Format("2006-01-02")
	require.Contains(t, body.Activities, today)
	entries := body.Activities[today]
	require.Len(t, entries, 2)

	counts := make(map[string]int)
	for _, entry := range entries {
		counts[entry.UserName] = entry.ActivityCount
	}
	assert.Equal(t, 2, counts["ana"])
	assert.Equal(t, 1, counts["bruno"])
}

func TestRecentActivities(t *testing.T) {
	app := setupApp(t)
	token, _ := registerAndLogin(t, app, "ana")
	groupID := createGroup(t, app, token, "Runners")

	for i := 0; i < 25; i++ {
		logActivity(t, app, token, groupID, "RUN", 10+i)
	}

	resp := doRequest(t, app, http.MethodGet, fmt.Sprintf("/api/groups/%d/recent-activities", groupID), token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Activities []struct {
			ActivityType string `json:"activityType"`
			User         struct {
				Name string `json:"name"`
			} `json:"user"`
			Group struct {
				Name string `json:"name"`
			} `json:"group"`
		} `json:"activities"`
	}
	decodeBody(t, resp, &body)

	// Capped at the 20 most recent
	require.Len(t, body.Activities, 20)
	assert.Equal(t, "ana", body.Activities[0].User.Name)
	assert.Equal(t, "Runners", body.Activities[0].Group.Name)
}
