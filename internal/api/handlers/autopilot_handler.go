package handlers

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/hibiken/asynq"
	"github.com/momentumhq/contentpilot/internal/queue"
	"github.com/momentumhq/contentpilot/internal/service"
	"github.com/momentumhq/contentpilot/internal/transfer"
	"github.com/valyala/fasthttp"
)

type AutopilotHandler struct {
	s           service.AutopilotService
	asynqClient *asynq.Client
}

func NewAutopilotHandler(s service.AutopilotService, asynqClient *asynq.Client) *AutopilotHandler {
	return &AutopilotHandler{s: s, asynqClient: asynqClient}
}

// sseSink streams progress events to the client as server-sent events.
type sseSink struct {
	w *bufio.Writer
}

func (s *sseSink) Emit(p transfer.GenerationProgress) error {
	data, err := json.Marshal(p)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(s.w, "data: %s\n\n", data); err != nil {
		return err
	}
	return s.w.Flush()
}

// Run executes an autopilot run. With ?stream=true the response is an SSE
// stream of progress events ending with the final result; otherwise the run
// executes synchronously and returns the result as JSON.
func (h *AutopilotHandler) Run(c *fiber.Ctx) error {
	consultantID := GetConsultantID(c)

	var run transfer.AutopilotRun
	if err := c.BodyParser(&run); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse json",
		})
	}

	if c.Query("stream") != "true" {
		result := h.s.Run(c.Context(), consultantID, &run, nil)
		if !result.Success {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(result)
		}
		return c.JSON(result)
	}

	c.Set("Content-Type", "text/event-stream")
	c.Set("Cache-Control", "no-cache")
	c.Set("Connection", "keep-alive")

	c.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		sink := &sseSink{w: w}

		// The fiber request context ends when the handler returns, so
		// the run gets its own.
		result := h.s.Run(context.Background(), consultantID, &run, sink)

		data, err := json.Marshal(result)
		if err != nil {
			return
		}
		fmt.Fprintf(w, "event: result\ndata: %s\n\n", data)
		w.Flush()
	}))

	return nil
}

// RunAsync queues the run for background execution.
func (h *AutopilotHandler) RunAsync(c *fiber.Ctx) error {
	consultantID := GetConsultantID(c)

	var run transfer.AutopilotRun
	if err := c.BodyParser(&run); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse json",
		})
	}

	err := queue.EnqueueAutopilotRun(h.asynqClient, queue.AutopilotRunPayload{
		ConsultantID: consultantID,
		Run:          run,
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Unable to queue run",
		})
	}

	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{
		"status": "queued",
	})
}

func (h *AutopilotHandler) ListBatches(c *fiber.Ctx) error {
	consultantID := GetConsultantID(c)

	batches, err := h.s.ListBatches(c.Context(), consultantID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to list batches",
		})
	}
	return c.JSON(batches)
}

func (h *AutopilotHandler) GetBatch(c *fiber.Ctx) error {
	consultantID := GetConsultantID(c)

	batchID, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid batch id",
		})
	}

	batch, posts, err := h.s.GetBatch(c.Context(), consultantID, batchID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to get batch",
		})
	}
	if batch == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Batch not found",
		})
	}

	return c.JSON(fiber.Map{
		"batch": batch,
		"posts": posts,
	})
}

func (h *AutopilotHandler) ApproveBatch(c *fiber.Ctx) error {
	consultantID := GetConsultantID(c)

	batchID, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid batch id",
		})
	}

	batch, err := h.s.ApproveBatch(c.Context(), consultantID, batchID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(batch)
}
