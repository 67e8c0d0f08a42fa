package service

import (
	"strings"
	"testing"
	"time"

	dom "github.com/boygear/toDoListWithWebFlux/internal/domain"
	"github.com/boygear/toDoListWithWebFlux/internal/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, 1, 2, 2, 2, 0, 0, time.UTC)

func ptr[T any](v T) *T { return &v }

func validDto() dto.TaskDto {
	return dto.TaskDto{
		Title:        ptr("Test Task"),
		Description:  ptr("Description"),
		CreationDate: &dto.Timestamp{Time: fixedNow},
		TaskStatus:   ptr(dom.StatusCreated),
	}
}

func TestValidatorAcceptsValidTask(t *testing.T) {
	v := NewValidator(func() time.Time { return fixedNow })

	assert.NoError(t, v.Validate(validDto()))

	noDesc := validDto()
	noDesc.Description = nil
	assert.NoError(t, v.Validate(noDesc))

	limits := validDto()
	limits.Title = ptr(strings.Repeat("a", MaxTitleLen))
	limits.Description = ptr(strings.Repeat("b", MaxDescriptionLen))
	assert.NoError(t, v.Validate(limits))

	multibyte := validDto()
	multibyte.Title = ptr(strings.Repeat("я", MaxTitleLen))
	assert.NoError(t, v.Validate(multibyte))
}

func TestValidatorRuleOrder(t *testing.T) {
	v := NewValidator(func() time.Time { return fixedNow })
	future := &dto.Timestamp{Time: fixedNow.Add(time.Minute)}

	tests := []struct {
		name   string
		mutate func(*dto.TaskDto)
		field  string
		reason Reason
		msg    string
	}{
		{"nil title", func(d *dto.TaskDto) { d.Title = nil }, "title", ReasonEmpty, "Title cannot be empty"},
		{"empty title", func(d *dto.TaskDto) { d.Title = ptr("") }, "title", ReasonEmpty, "Title cannot be empty"},
		{"long title", func(d *dto.TaskDto) { d.Title = ptr(strings.Repeat("a", 101)) }, "title", ReasonTooLong, "Title cannot exceed 100 characters"},
		{"long description", func(d *dto.TaskDto) { d.Description = ptr(strings.Repeat("a", 501)) }, "description", ReasonTooLong, "Description cannot exceed 500 characters"},
		{"missing date", func(d *dto.TaskDto) { d.CreationDate = nil }, "creationDate", ReasonMissing, "Creation date is required"},
		{"future date", func(d *dto.TaskDto) { d.CreationDate = future }, "creationDate", ReasonFuture, "Creation date cannot be in the future"},
		{"missing status", func(d *dto.TaskDto) { d.TaskStatus = nil }, "taskStatus", ReasonMissing, "Task status is required"},

		// several invalid fields: the earliest rule wins
		{"empty title beats everything", func(d *dto.TaskDto) {
			d.Title = ptr("")
			d.Description = ptr(strings.Repeat("a", 501))
			d.CreationDate = nil
			d.TaskStatus = nil
		}, "title", ReasonEmpty, "Title cannot be empty"},
		{"long title beats description", func(d *dto.TaskDto) {
			d.Title = ptr(strings.Repeat("a", 101))
			d.Description = ptr(strings.Repeat("a", 501))
		}, "title", ReasonTooLong, "Title cannot exceed 100 characters"},
		{"description beats future date", func(d *dto.TaskDto) {
			d.Description = ptr(strings.Repeat("a", 501))
			d.CreationDate = future
		}, "description", ReasonTooLong, "Description cannot exceed 500 characters"},
		{"missing date beats status", func(d *dto.TaskDto) {
			d.CreationDate = nil
			d.TaskStatus = nil
		}, "creationDate", ReasonMissing, "Creation date is required"},
		{"future date beats status", func(d *dto.TaskDto) {
			d.CreationDate = future
			d.TaskStatus = nil
		}, "creationDate", ReasonFuture, "Creation date cannot be in the future"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validDto()
			tt.mutate(&in)

			err := v.Validate(in)
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Field)
			assert.Equal(t, tt.reason, verr.Reason)
			assert.EqualError(t, err, tt.msg)
		})
	}
}

func TestValidatorNowIsNotFuture(t *testing.T) {
	v := NewValidator(func() time.Time { return fixedNow })
	in := validDto()
	in.CreationDate = &dto.Timestamp{Time: fixedNow}
	assert.NoError(t, v.Validate(in))

	in.CreationDate = &dto.Timestamp{Time: fixedNow.Add(time.Nanosecond)}
	assert.Error(t, v.Validate(in))
}

func TestNewValidatorDefaultsToWallClock(t *testing.T) {
	v := NewValidator(nil)
	in := validDto()
	in.CreationDate = &dto.Timestamp{Time: time.Now().Add(-time.Second)}
	assert.NoError(t, v.Validate(in))

	in.CreationDate = &dto.Timestamp{Time: time.Now().Add(10 * time.Minute)}
	assert.Error(t, v.Validate(in))
}
