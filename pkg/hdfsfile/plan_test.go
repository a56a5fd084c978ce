package hdfsfile_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/hdfsfile/pkg/hdfsfile"
)

func actionTypes(p *hdfsfile.Plan) []hdfsfile.ActionType {
	out := make([]hdfsfile.ActionType, 0, len(p.Actions))
	for _, a := range p.Actions {
		out = append(out, a.Type)
	}
	return out
}

func TestNewPlan_TransitionTable(t *testing.T) {
	testCases := []struct {
		from    hdfsfile.State
		to      hdfsfile.State
		want    string // rendered action, empty for no action
		wantErr bool
	}{
		{hdfsfile.StateAbsent, hdfsfile.StateFile, "", true},
		{hdfsfile.StateAbsent, hdfsfile.StateDirectory, "mkdir -p /p", false},
		{hdfsfile.StateAbsent, hdfsfile.StateTouch, "touch /p", false},
		{hdfsfile.StateAbsent, hdfsfile.StateAbsent, "", false},
		{hdfsfile.StateFile, hdfsfile.StateFile, "", false},
		{hdfsfile.StateFile, hdfsfile.StateTouch, "touch /p", false},
		{hdfsfile.StateFile, hdfsfile.StateAbsent, "remove /p", false},
		{hdfsfile.StateFile, hdfsfile.StateDirectory, "", true},
		{hdfsfile.StateDirectory, hdfsfile.StateDirectory, "", false},
		{hdfsfile.StateDirectory, hdfsfile.StateAbsent, "remove -r /p", false},
		{hdfsfile.StateDirectory, hdfsfile.StateFile, "", true},
		{hdfsfile.StateDirectory, hdfsfile.StateTouch, "", true},
	}

	for _, tc := range testCases {
		t.Run(string(tc.from)+"->"+string(tc.to), func(t *testing.T) {
			status := hdfsfile.Status{State: tc.from}
			if tc.from != hdfsfile.StateAbsent {
				status.Owner, status.Group = "u", "g"
			}

			plan, err := hdfsfile.NewPlan(hdfsfile.DesiredSpec{Path: "/p", State: tc.to}, status)
			if tc.wantErr {
				var terr *hdfsfile.UnsupportedTransitionError
				require.ErrorAs(t, err, &terr)
				assert.Nil(t, plan)
				return
			}
			require.NoError(t, err)

			if tc.want == "" {
				assert.False(t, plan.Changed())
				assert.Empty(t, plan.Actions)
				return
			}
			require.Len(t, plan.Actions, 1)
			assert.Equal(t, tc.want, plan.Actions[0].String())
			assert.True(t, plan.Changed())
		})
	}
}

func TestNewPlan_DefaultStateIsFile(t *testing.T) {
	plan, err := hdfsfile.NewPlan(hdfsfile.DesiredSpec{Path: "/p"}, hdfsfile.AbsentStatus())
	var terr *hdfsfile.UnsupportedTransitionError
	require.ErrorAs(t, err, &terr)
	assert.Nil(t, plan)
	assert.Equal(t, hdfsfile.StateFile, terr.To)
}

func TestNewPlan_FixedAttributeOrder(t *testing.T) {
	plan, err := hdfsfile.NewPlan(hdfsfile.DesiredSpec{
		Path:        "/p",
		State:       hdfsfile.StateDirectory,
		Owner:       "u",
		Group:       "g",
		Mode:        "0755",
		Replication: 2,
		Recurse:     true,
	}, hdfsfile.AbsentStatus())
	require.NoError(t, err)

	assert.Equal(t, []hdfsfile.ActionType{
		hdfsfile.ActionMkdir,
		hdfsfile.ActionChown,
		hdfsfile.ActionSetRep,
		hdfsfile.ActionChmod,
	}, actionTypes(plan))

	var rendered []string
	for _, a := range plan.Actions {
		rendered = append(rendered, a.String())
	}
	assert.Equal(t, []string{
		"mkdir -p /p",
		"chown -R u:g /p",
		"setrep 2 /p",
		"chmod -R 0755 /p",
	}, rendered)
}

func TestNewPlan_SkipsUnplannedStages(t *testing.T) {
	plan, err := hdfsfile.NewPlan(hdfsfile.DesiredSpec{
		Path:  "/p",
		State: hdfsfile.StateTouch,
		Mode:  "0600",
	}, hdfsfile.Status{State: hdfsfile.StateFile, Owner: "u", Group: "g", Replication: 3})
	require.NoError(t, err)

	require.Len(t, plan.Actions, 2)
	assert.Equal(t, hdfsfile.ActionTouch, plan.Actions[0].Type)
	assert.Equal(t, hdfsfile.ActionChmod, plan.Actions[1].Type)
}

func TestNewPlan_ComparesAgainstStaleStatus(t *testing.T) {
	// The status predates the transition; an absent path has no owner, so a
	// requested owner is always applied after creation.
	plan, err := hdfsfile.NewPlan(hdfsfile.DesiredSpec{
		Path:        "/p",
		State:       hdfsfile.StateDirectory,
		Owner:       "hdfs",
		Replication: 3,
	}, hdfsfile.AbsentStatus())
	require.NoError(t, err)

	assert.Equal(t, []hdfsfile.ActionType{
		hdfsfile.ActionMkdir,
		hdfsfile.ActionChown,
		hdfsfile.ActionSetRep,
	}, actionTypes(plan))
}

func TestNewPlan_AbsentSkipsAttributes(t *testing.T) {
	plan, err := hdfsfile.NewPlan(hdfsfile.DesiredSpec{
		Path:        "/p",
		State:       hdfsfile.StateAbsent,
		Owner:       "u",
		Mode:        "0700",
		Replication: 1,
	}, hdfsfile.Status{State: hdfsfile.StateFile, Owner: "x", Group: "y", Replication: 3})
	require.NoError(t, err)

	assert.Equal(t, []hdfsfile.ActionType{hdfsfile.ActionRemove}, actionTypes(plan))
}

func TestChownTarget(t *testing.T) {
	assert.Equal(t, "u", hdfsfile.ChownTarget("u", ""))
	assert.Equal(t, "u:g", hdfsfile.ChownTarget("u", "g"))
	assert.Equal(t, ":g", hdfsfile.ChownTarget("", "g"))
}
