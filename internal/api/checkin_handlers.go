package api

import (
	"github.com/gin-gonic/gin"
	"github.com/victorsuarez3/hangovershield-sub001/internal"
	"github.com/victorsuarez3/hangovershield-sub001/internal/plan"
	"github.com/victorsuarez3/hangovershield-sub001/internal/progress"
	"github.com/victorsuarez3/hangovershield-sub001/internal/service"
)

// PostCheckIn submits the daily self-report. The first call of the day
// creates the record and its plan; later calls return the existing record
// regardless of input.
func PostCheckIn(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := c.MustGet("user").(*internal.User)

		var req service.CheckInRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			HandleError(c, app.Logger(), err, 400, "Invalid JSON")
			return
		}
		if err := service.ValidateCheckInRequest(&req); err != nil {
			HandleError(c, app.Logger(), err, 400, "Validation failed")
			return
		}

		rec, err := app.Store().GetOrCreateToday(c.Request.Context(), user, req.Input(), app.Location())
		if err != nil {
			HandleStoreError(c, app.Logger(), err, "Failed to create check-in")
			return
		}
		HandleSuccess(c, app.Logger(), rec, nil)
	}
}

func GetToday(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := c.MustGet("user").(*internal.User)

		rec, err := app.Store().GetToday(c.Request.Context(), user.ID, app.Location())
		if err != nil {
			HandleStoreError(c, app.Logger(), err, "No check-in for today")
			return
		}
		HandleSuccess(c, app.Logger(), rec, nil)
	}
}

func GetTodayProgress(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := c.MustGet("user").(*internal.User)

		rec, err := app.Store().GetToday(c.Request.Context(), user.ID, app.Location())
		if err != nil {
			HandleStoreError(c, app.Logger(), err, "No check-in for today")
			return
		}
		HandleSuccess(c, app.Logger(), progress.Summarize(rec), nil)
	}
}

func GetHistory(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := c.MustGet("user").(*internal.User)

		recs, err := app.Store().History(c.Request.Context(), user.ID)
		if err != nil {
			HandleStoreError(c, app.Logger(), err, "Failed to fetch history")
			return
		}
		HandleSuccess(c, app.Logger(), recs, map[string]any{"count": len(recs)})
	}
}

// PatchStep toggles one step's completion on the day's record.
func PatchStep(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := c.MustGet("user").(*internal.User)
		dayID := c.Param("day")
		stepID := c.Param("stepID")

		var req service.StepToggleRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			HandleError(c, app.Logger(), err, 400, "Invalid JSON")
			return
		}
		if err := service.ValidateStepToggleRequest(&req); err != nil {
			HandleError(c, app.Logger(), err, 400, "Validation failed")
			return
		}

		rec, err := app.Store().SetStepCompletion(c.Request.Context(), user.ID, dayID, stepID, *req.Completed)
		if err != nil {
			HandleStoreError(c, app.Logger(), err, "Failed to update step")
			return
		}
		HandleSuccess(c, app.Logger(), rec, map[string]any{"progress": progress.Summarize(rec)})
	}
}

// PostComplete marks the plan finished for the day, even with steps still
// open (the confirmation dialog path).
func PostComplete(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := c.MustGet("user").(*internal.User)
		dayID := c.Param("day")

		var req service.CompletePlanRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			HandleError(c, app.Logger(), err, 400, "Invalid JSON")
			return
		}
		if err := service.ValidateCompletePlanRequest(&req); err != nil {
			HandleError(c, app.Logger(), err, 400, "Validation failed")
			return
		}

		rec, err := app.Store().MarkPlanCompleted(c.Request.Context(), user.ID, dayID, req.StepsCompleted, req.TotalSteps)
		if err != nil {
			HandleStoreError(c, app.Logger(), err, "Failed to complete plan")
			return
		}
		HandleSuccess(c, app.Logger(), rec, nil)
	}
}

// PostPlanPreview generates a plan without persisting anything. Clients use
// it as the fallback when the local record is gone but the raw inputs are
// still in memory.
func PostPlanPreview(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req service.CheckInRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			HandleError(c, app.Logger(), err, 400, "Invalid JSON")
			return
		}
		if err := service.ValidateCheckInRequest(&req); err != nil {
			HandleError(c, app.Logger(), err, 400, "Validation failed")
			return
		}

		in := req.Input()
		p, err := plan.Generate(in.Level, in.Symptoms, in.DrankLastNight, in.DrinkingToday)
		if err != nil {
			HandleError(c, app.Logger(), err, 400, "Failed to generate plan")
			return
		}
		HandleSuccess(c, app.Logger(), p, nil)
	}
}
