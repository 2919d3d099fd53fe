package themes

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/harshsu7/Arya-Honda-Dashboard-Monthly-Reviews/internal/model"
)

func TestByName(t *testing.T) {
	assert.Equal(t, Light.Primary, ByName(" Light ").Primary)
	assert.Equal(t, Default.Primary, ByName("dark").Primary)
	assert.Equal(t, Default.Primary, ByName("").Primary)
}

func TestStatus(t *testing.T) {
	assert.Equal(t, Default.StatusSuccess.GetForeground(), Default.Status(model.StatusAchieved).GetForeground())
	assert.Equal(t, Default.StatusWarning.GetForeground(), Default.Status(model.StatusBelowTarget).GetForeground())
	assert.Equal(t, Default.StatusError.GetForeground(), Default.Status(model.StatusNeedsAction).GetForeground())
	assert.Equal(t, Default.StatusMuted.GetForeground(), Default.Status(model.StatusNotApplicable).GetForeground())
}
