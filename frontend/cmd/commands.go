package cmd

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	ishell "github.com/abiosoft/ishell"
	"github.com/common-nighthawk/go-figure"

	"habitboard/client"
	"habitboard/habit"
	"habitboard/lib/dates"
	"habitboard/models"
	"habitboard/scoring"
	"habitboard/session"
	"habitboard/tracker"
)

// guestCommands is a slice of Command structures containing commands that are available before an identity has been entered.
var guestCommands []Command

// userCommands is a slice of Command structures containing commands that are available only to an active user.
var userCommands []Command

// commonCommands is a slice of Command structures containing commands that are available regardless of session state.
var commonCommands []Command

// shell represents an instance of the interactive shell used for this application.
var shell *ishell.Shell

var sess *session.Session
var trk *tracker.Tracker

// stopWatch cancels the live store subscriptions for the active user.
var stopWatch func()

// The Command struct defines a user command in the system. Each command has a Name, a Desc (short for description), and a Func (the function to execute when the command is called).
type Command struct {
	Name string
	Desc string
	Func func(c *ishell.Context)
}

// Init wires the session and tracker into the shell and sets up the commands
// for the guest and active-user scenarios.
func Init(s *session.Session, t *tracker.Tracker) {
	sess = s
	trk = t
	shell = ishell.New()

	guestCommands = []Command{
		{
			Name: "whoishere",
			Desc: "List the names already on the class roster",
			Func: func(c *ishell.Context) {
				roster, err := trk.Roster(context.Background())
				if err != nil {
					client.PrintError(err.Error())
					return
				}
				if len(roster.Names) == 0 {
					c.Println("Nobody yet. Be the first with 'enter'.")
					return
				}
				c.Println("Names on the roster:")
				for _, name := range roster.Names {
					c.Println("  |-- " + name)
				}
				c.Println()
			},
		},
		{
			Name: "enter",
			Desc: "Enter with your name and PIN (new names are created)",
			Func: func(c *ishell.Context) {
				var name, pin string
				remembered := session.RememberedName()
				for {
					if remembered != "" {
						c.Printf("Enter Name [%s]: ", remembered)
					} else {
						c.Print("Enter Name: ")
					}
					name = strings.TrimSpace(c.ReadLine())
					if name == "" && remembered != "" {
						name = remembered
					}
					if name != "" {
						break
					}
					c.Println("Name cannot be empty.")
				}

				for {
					c.Print("Enter PIN: ")
					pin = c.ReadPassword()
					if strings.TrimSpace(pin) != "" {
						break
					}
					c.Println("PIN cannot be empty.")
				}

				profile, err := sess.Enter(context.Background(), name, pin)
				if err != nil {
					client.PrintError(err.Error())
					return
				}

				if stop, err := trk.Watch(context.Background()); err == nil {
					stopWatch = stop
				} else {
					client.PrintError("live updates unavailable: " + err.Error())
				}
				if _, err := trk.SyncLeaderboard(context.Background()); err != nil {
					client.PrintError("leaderboard unavailable: " + err.Error())
				}

				c.Printf("Welcome, %s! You are on a %d-day streak.\n", profile.Name, profile.OverallStreak)
				for _, command := range guestCommands {
					shell.DeleteCmd(command.Name)
				}
				addCommands(shell, userCommands)
			},
		},
	}

	userCommands = []Command{
		{
			Name: "habits",
			Desc: "List your habits and their due status",
			Func: func(c *ishell.Context) {
				profile := sess.Current()
				if profile == nil {
					client.PrintError("no active user")
					return
				}
				c.Print(client.RenderHabits(profile.Habits, dates.Today()))
			},
		},
		{
			Name: "add",
			Desc: "Add a new habit",
			Func: func(c *ishell.Context) {
				c.Print("Habit title: ")
				title := c.ReadLine()

				var freq models.Frequency
				for {
					c.Print("Frequency (daily / every two days / custom): ")
					parsed, err := models.ParseFrequency(c.ReadLine())
					if err != nil {
						c.Println("Please type 'daily', 'every two days' or 'custom'.")
						continue
					}
					freq = parsed
					break
				}

				interval := 1
				if freq == models.Custom {
					for {
						c.Print("Repeat every how many days? ")
						n, err := strconv.Atoi(strings.TrimSpace(c.ReadLine()))
						if err != nil {
							c.Println("Please enter a whole number.")
							continue
						}
						interval = n
						break
					}
				}

				h, err := trk.AddHabit(context.Background(), title, freq, interval)
				if err != nil {
					client.PrintError(err.Error())
					return
				}
				c.Printf("Added '%s'.\n", h.Title)
			},
		},
		{
			Name: "done",
			Desc: "Mark a habit completed",
			Func: func(c *ishell.Context) {
				h, ok := pickHabit(c)
				if !ok {
					return
				}
				today := dates.Today()
				if !habit.IsDue(h, today) {
					days := habit.DaysUntilDue(h, today)
					c.Printf("'%s' is not due yet — %d day(s) to go.\n", h.Title, days)
					return
				}
				result, err := trk.CompleteHabit(context.Background(), h.ID)
				if err != nil {
					client.PrintError(err.Error())
					return
				}
				c.Printf("Nice! +%d points. You now have %d points, a %d-day streak, level %d.\n",
					scoring.CompletionPoints, result.Points, result.Streak, result.Level)
			},
		},
		{
			Name: "remove",
			Desc: "Delete a habit",
			Func: func(c *ishell.Context) {
				h, ok := pickHabit(c)
				if !ok {
					return
				}
				for {
					c.Printf("Delete '%s'? (yes/no): ", h.Title)
					response := strings.ToLower(c.ReadLine())
					if response == "no" {
						return
					}
					if response == "yes" {
						break
					}
					c.Println("Invalid response. Please type 'yes' or 'no'.")
				}
				if err := trk.DeleteHabit(context.Background(), h.ID); err != nil {
					client.PrintError(err.Error())
					return
				}
				c.Println("Habit deleted.")
			},
		},
		{
			Name: "board",
			Desc: "Show the top-5 leaderboard",
			Func: func(c *ishell.Context) {
				board, err := trk.SyncLeaderboard(context.Background())
				if err != nil {
					// Fall back to the last pushed snapshot.
					board = trk.Leaderboard()
				}
				c.Print(client.RenderLeaderboard(board))
			},
		},
		{
			Name: "me",
			Desc: "Show your points, level and streak",
			Func: func(c *ishell.Context) {
				profile := sess.Current()
				if profile == nil {
					client.PrintError("no active user")
					return
				}
				c.Print(client.RenderProfile(*profile))
			},
		},
		{
			Name: "switch",
			Desc: "Switch to another user",
			Func: func(c *ishell.Context) {
				if stopWatch != nil {
					stopWatch()
					stopWatch = nil
				}
				sess.SwitchUser()
				c.Println("You are now signed out. Type 'enter' to pick a name.")
				for _, command := range userCommands {
					shell.DeleteCmd(command.Name)
				}
				addCommands(shell, guestCommands)
			},
		},
	}

	commonCommands = []Command{
		{
			Name: "exit",
			Desc: "Exit the application",
			Func: func(c *ishell.Context) {
				if stopWatch != nil {
					stopWatch()
				}
				fmt.Println("Goodbye!")
				os.Exit(0)
			},
		},
	}

	// The help command is created separately to avoid the cyclic dependency
	commonCommands = append(commonCommands, Command{
		Name: "help",
		Desc: "List available commands",
		Func: func(c *ishell.Context) {
			c.Println("Available commands:")
			if sess.Active() {
				for _, command := range userCommands {
					c.Println("  |-- '" + command.Name + "' : " + command.Desc)
				}
			} else {
				for _, command := range guestCommands {
					c.Println("  |-- '" + command.Name + "' : " + command.Desc)
				}
			}
			for _, command := range commonCommands {
				c.Println("  |-- '" + command.Name + "' : " + command.Desc)
			}
			c.Println()
		},
	})
}

// pickHabit lists the habits and reads a 1-based choice from the user.
func pickHabit(c *ishell.Context) (models.Habit, bool) {
	profile := sess.Current()
	if profile == nil {
		client.PrintError("no active user")
		return models.Habit{}, false
	}
	if len(profile.Habits) == 0 {
		c.Println("No habits yet. Use 'add' to create one.")
		return models.Habit{}, false
	}
	c.Print(client.RenderHabits(profile.Habits, dates.Today()))
	for {
		c.Print("Which habit (number)? ")
		n, err := strconv.Atoi(strings.TrimSpace(c.ReadLine()))
		if err != nil || n < 1 || n > len(profile.Habits) {
			c.Printf("Please enter a number between 1 and %d.\n", len(profile.Habits))
			continue
		}
		return profile.Habits[n-1], true
	}
}

// addCommands is a helper function that adds the given commands to the shell.
func addCommands(shell *ishell.Shell, commands []Command) {
	for _, command := range commands {
		shell.AddCmd(&ishell.Cmd{
			Name: command.Name,
			Help: "Command: " + command.Name,
			Func: command.Func,
		})
	}
}

// Execute is the main function that executes the shell.
// It welcomes the user, adds common and guest commands to the shell, and runs the shell.
func Execute() {
	shell.Println()
	figure.NewFigure("Habitboard", "basic", true).Print()
	shell.Println("Welcome to Habitboard -- the classroom habit tracker. Type 'help' to see a list of commands.")

	addCommands(shell, commonCommands)
	addCommands(shell, guestCommands)

	shell.Run()
}
