// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

// setupCommand initializes the config file and local database.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Initialize config file and local database",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
				Value:   "config.toml",
			},
		},
		Action: r.Setup,
	}
}

// authCommand handles backend sign-in operations
func authCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "auth",
		Usage: "Sign in and out of the hosted backend",
		Commands: []*cli.Command{
			{
				Name:  "login",
				Usage: "Request a magic sign-in link or run an OAuth provider flow",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "email",
						Aliases: []string{"e"},
						Usage:   "Email address to send the magic link to",
					},
					&cli.StringFlag{
						Name:    "provider",
						Aliases: []string{"p"},
						Usage:   "OAuth provider (github, google)",
					},
				},
				Action: r.AuthLogin,
			},
			{
				Name:  "verify",
				Usage: "Complete a magic-link sign-in with the emailed code",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "email",
						Aliases:  []string{"e"},
						Usage:    "Email address the link was sent to",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "code",
						Usage:    "One-time code from the email",
						Required: true,
					},
				},
				Action: r.AuthVerify,
			},
			{
				Name:   "status",
				Usage:  "Show the active session",
				Action: r.AuthStatus,
			},
			{
				Name:   "logout",
				Usage:  "Revoke the active session",
				Action: r.AuthLogout,
			},
		},
	}
}

// lessonCommand handles lesson record operations
func lessonCommand(r *Runner) *cli.Command {
	manifestFlag := &cli.StringFlag{
		Name:     "manifest",
		Aliases:  []string{"m"},
		Usage:    "Path to a TOML lesson manifest",
		Required: true,
	}
	dirFlag := &cli.StringFlag{
		Name:    "dir",
		Aliases: []string{"d"},
		Usage:   "Directory of .png images to load into the draft",
	}

	return &cli.Command{
		Name:  "lesson",
		Usage: "Lesson record operations",
		Commands: []*cli.Command{
			{
				Name:   "submit",
				Usage:  "Upload a lesson's images and insert its record",
				Flags:  []cli.Flag{manifestFlag, dirFlag},
				Action: r.LessonSubmit,
			},
			{
				Name:  "export",
				Usage: "Write a lesson draft as CSV",
				Flags: []cli.Flag{
					manifestFlag,
					dirFlag,
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output file path (stdout when omitted)",
					},
				},
				Action: r.LessonExport,
			},
		},
	}
}

// videoCommand handles video record operations
func videoCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "video",
		Usage: "Video record operations",
		Commands: []*cli.Command{
			{
				Name:  "submit",
				Usage: "Insert a video record from a YouTube reference",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "url",
						Usage:    "YouTube URL or iframe embed",
						Required: true,
					},
					&cli.StringFlag{Name: "title-ru", Usage: "Russian title"},
					&cli.StringFlag{Name: "title-he", Usage: "Hebrew title"},
					&cli.StringFlag{Name: "title-en", Usage: "English title"},
					&cli.StringFlag{
						Name:  "category",
						Usage: "Category key (animals, science, nature, space, art, music, human)",
						Value: "animals",
					},
					&cli.StringFlag{
						Name:  "format",
						Usage: "Record format (video, short)",
						Value: "video",
					},
					&cli.StringFlag{
						Name:     "channel",
						Usage:    "Source channel name",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "duration",
						Usage: "Duration label, mm:ss (full videos only)",
					},
					&cli.StringFlag{
						Name:  "dependency",
						Usage: "Language dependency (spoken, visual)",
						Value: "spoken",
					},
					&cli.StringFlag{
						Name:  "language",
						Usage: "Spoken content language (en, ru, he)",
						Value: "en",
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Print the inserted record as JSON",
					},
				},
				Action: r.VideoSubmit,
			},
		},
	}
}

// historyCommand lists locally recorded submissions
func historyCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "history",
		Usage: "List recent submissions recorded locally",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "limit",
				Usage: "Maximum number of entries to show",
				Value: 20,
			},
			&cli.StringFlag{
				Name:  "kind",
				Usage: "Filter by record kind (lesson, video)",
			},
		},
		Action: r.History,
	}
}

// tuiCommand launches the interactive terminal UI
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "tui",
		Usage: "Launch the interactive admin panel",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "dir",
				Aliases: []string{"d"},
				Usage:   "Directory scanned by the load-images action",
			},
		},
		Action: r.TUI,
	}
}
