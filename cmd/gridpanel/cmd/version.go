package cmd

func init() {
	RegisterCommand(&Command{
		Name:  "version",
		Short: "Print version information",
		Long:  "Print the gridpanel version and build time.",
		Usage: "gridpanel version",
		Run: func(args []string) error {
			printVersion()
			return nil
		},
	})
}
