package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"registration-backend/client"
	"registration-backend/ui/form"
)

func init() {
	// Query the background colour before the program owns stdin, so the
	// terminal's reply does not land in the first text input.
	_ = lipgloss.HasDarkBackground()
}

const defaultServer = "http://localhost:8000"

var cfgFile string

var rootCmd = &cobra.Command{
	Use:          "register",
	Short:        "Register for the event from the terminal",
	Long:         `Fill in the event registration form in the terminal and submit it to the registration service.`,
	SilenceUsage: true,
	RunE:         run,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: ~/.config/registration/config.yaml)")
	rootCmd.Flags().StringP("server", "s", defaultServer,
		"base URL of the registration service")

	_ = viper.BindPFlag("server", rootCmd.Flags().Lookup("server"))
}

func initConfig() {
	viper.SetDefault("server", defaultServer)
	viper.SetEnvPrefix("registration")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, _ := os.UserHomeDir()
		viper.AddConfigPath(filepath.Join(home, ".config", "registration"))
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			fmt.Fprintln(os.Stderr, "reading config:", err)
		}
	}
}

func run(cmd *cobra.Command, args []string) error {
	server := viper.GetString("server")
	if server == "" {
		return fmt.Errorf("--server is required")
	}

	f := client.NewForm(client.New(server))
	p := tea.NewProgram(form.New(f), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running form: %w", err)
	}

	if reg := f.Registration(); reg != nil {
		fmt.Printf("Registered %s (%s)\n", reg.Email, reg.ID.Hex())
	}
	return nil
}
