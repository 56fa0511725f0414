package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/avdonin/taskhub/internal/common"
)

func (a *App) Register(ctx context.Context) {

	userName, err := GetSimpleText(a.reader, "Enter user name", os.Stdout)
	if err != nil {
		fmt.Println(err.Error())
		return
	}

	password, err := GetPassword(os.Stdout)
	if err != nil {
		fmt.Println(err.Error())
		return
	}
	defer common.WipeByteArray(password)

	err = a.api.SignUp(ctx, userName, password)
	if err != nil {
		if errors.Is(err, common.ErrorDuplicateUsername) {
			fmt.Println("User name is already taken")
			return
		}
		fmt.Println(err.Error())
		return
	}

	fmt.Println("Success! You can now log in.")
}

func (a *App) Login(ctx context.Context) {

	userName, err := GetSimpleText(a.reader, "Enter user name", os.Stdout)
	if err != nil {
		fmt.Println(err.Error())
		return
	}

	password, err := GetPassword(os.Stdout)
	if err != nil {
		fmt.Println(err.Error())
		return
	}
	defer common.WipeByteArray(password)

	err = a.api.SignIn(ctx, userName, password)
	if err != nil {
		if errors.Is(err, common.ErrorUnauthorized) {
			fmt.Println("Invalid credentials")
			return
		}
		fmt.Println(err.Error())
		return
	}

	a.userName = userName
	fmt.Println("Logged in!")
}

func (a *App) Logout(ctx context.Context) {
	a.api.Logout()
	a.userName = ""
	fmt.Println("Logged out")
}
