package sh

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"

	"github.com/abiosoft/ishell"

	"github.com/robotalks/framlog.go/pkg/env"
	"github.com/robotalks/framlog.go/pkg/framlog"
	"github.com/robotalks/framlog.go/pkg/store"
)

// Shell provides ishell backed interactive shell over the log store.
type Shell struct {
	Interactive bool
	OutputJSON  bool

	Shell  *ishell.Shell
	Config *env.Config
	Store  store.Store
	Logger *framlog.Logger
}

const shellKey = "$shell"

var (
	// flags

	evalOnly   bool
	outputJSON bool

	// commands

	commands = []*ishell.Cmd{
		&StatusCmd,
	}
)

func init() {
	flag.BoolVar(&evalOnly, "e", evalOnly, "Evaluation only, no interactive shell.")
	flag.BoolVar(&outputJSON, "json", outputJSON, "Print output in JSON.")
}

// AddCmds is used by other commands providers during init func.
func AddCmds(cmds ...*ishell.Cmd) {
	commands = append(commands, cmds...)
}

// New creates a new shell.
func New(conf *env.Config) *Shell {
	s := &Shell{
		Interactive: !evalOnly,
		OutputJSON:  outputJSON,

		Shell:  ishell.New(),
		Config: conf,
	}
	s.Shell.Set(shellKey, s)
	s.Shell.SetPrompt("fram > ")
	for _, cmd := range commands {
		s.Shell.AddCmd(cmd)
	}
	return s
}

// ShellFrom gets Shell from ishell context.
func ShellFrom(c *ishell.Context) *Shell {
	return c.Get(shellKey).(*Shell)
}

// Open opens the configured store and binds the logger to it.
func (s *Shell) Open() error {
	st, err := s.Config.NewStore()
	if err != nil {
		return err
	}
	s.Store = st
	s.Logger = framlog.New(st)
	return nil
}

// Close releases the store.
func (s *Shell) Close() error {
	if closer, ok := s.Store.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}

// Status describes the open store and logger state.
type Status struct {
	Device        string `json:"device"`
	Capacity      int    `json:"capacity"`
	Window        int    `json:"window"`
	Cursor        int    `json:"cursor"`
	TransferLimit int    `json:"transfer_limit"`
}

// Status reports the open store and logger state.
func (s *Shell) Status() Status {
	st := Status{
		Device:        "mem",
		Capacity:      s.Store.Capacity(),
		Window:        s.Logger.Window(),
		Cursor:        s.Logger.Offset(),
		TransferLimit: s.Store.TransferLimit(),
	}
	if str, ok := s.Store.(fmt.Stringer); ok {
		st.Device = str.String()
	}
	return st
}

// Run runs the shell.
func (s *Shell) Run(args ...string) {
	if err := s.Open(); err != nil {
		log.Fatalln(err)
	}
	defer s.Close()

	if len(args) > 0 {
		if err := s.Shell.Process(args...); err != nil {
			log.Fatalln(err)
		}
		return
	}
	if s.Interactive {
		s.Shell.Run()
		return
	}
	log.Fatalln("command expected")
}

var (
	// StatusCmd shows the store and window status.
	StatusCmd = ishell.Cmd{
		Name:    "status",
		Aliases: []string{"st"},
		Help:    "",
		Func: func(c *ishell.Context) {
			s := ShellFrom(c)
			st := s.Status()
			if s.OutputJSON {
				out, err := json.Marshal(st)
				if err != nil {
					c.Err(err)
					return
				}
				c.Println(string(out))
				return
			}
			c.Printf("device:   %s\n", st.Device)
			c.Printf("capacity: %d\n", st.Capacity)
			c.Printf("window:   %d\n", st.Window)
			c.Printf("cursor:   %d\n", st.Cursor)
			c.Printf("limit:    %d\n", st.TransferLimit)
		},
	}
)

// Main is a helper to provide a single call in main.
func Main() {
	flag.Parse()
	New(env.NewConfig()).Run(flag.Args()...)
}
