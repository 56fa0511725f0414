package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/avdonin/taskhub/internal/common"
)

func (a *App) ping(ctx context.Context) {
	if err := a.api.Ping(ctx); err != nil {
		fmt.Println("Server is unreachable:", err.Error())
		return
	}
	fmt.Println("OK")
}

// list prints the caller's tasks. An optional first argument filters by
// status, e.g. "list done".
func (a *App) list(ctx context.Context, args []string) {
	status := ""
	if len(args) > 0 {
		status = args[0]
	}

	tasks, err := a.api.ListTasks(ctx, status, "")
	if err != nil {
		fmt.Println(err.Error())
		return
	}

	if len(tasks) == 0 {
		fmt.Println("No tasks")
		return
	}

	for _, t := range tasks {
		fmt.Printf("%s  [%s]  %s\n", t.ID, t.Status, t.Title)
		if t.Description != "" {
			fmt.Printf("    %s\n", t.Description)
		}
	}
}

func (a *App) add(ctx context.Context) {

	title, err := GetSimpleText(a.reader, "Enter title", os.Stdout)
	if err != nil {
		fmt.Println(err.Error())
		return
	}

	description, err := GetSimpleText(a.reader, "Enter description (optional)", os.Stdout)
	if err != nil {
		fmt.Println(err.Error())
		return
	}

	task, err := a.api.CreateTask(ctx, title, description)
	if err != nil {
		fmt.Println(err.Error())
		return
	}

	fmt.Printf("Created %s\n", task.ID)
}

func (a *App) status(ctx context.Context, id, status string) {
	task, err := a.api.UpdateTaskStatus(ctx, id, status)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			fmt.Println("Task not found")
			return
		}
		fmt.Println(err.Error())
		return
	}
	fmt.Printf("%s is now %s\n", task.ID, task.Status)
}

func (a *App) remove(ctx context.Context, id string) {
	err := a.api.DeleteTask(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			fmt.Println("Task not found")
			return
		}
		fmt.Println(err.Error())
		return
	}
	fmt.Println("Deleted")
}
