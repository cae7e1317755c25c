package cmd

import (
	"sync"

	"github.com/jellysan-cli/jellysan/log"
	"github.com/jellysan-cli/jellysan/player"
	"github.com/jellysan-cli/jellysan/util"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(runCmd)
}

// runCmd plays a single media target through the configured sink and blocks
// until playback finishes.
var runCmd = &cobra.Command{
	Use:   "run <url|file>",
	Short: "Play a media URL or local file in the video sink",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		CheckDependencies()

		sink := player.NewMPV()
		defer util.Ignore(sink.Close)

		var once sync.Once
		done := make(chan struct{})
		finish := func() { once.Do(func() { close(done) }) }

		handleErr(sink.Bind(player.Events{
			OnEnded: finish,
			OnError: func(err error) {
				log.Error(err)
				finish()
			},
		}))

		handleErr(sink.SetSource(args[0]))
		handleErr(sink.Play())
		<-done
	},
}
