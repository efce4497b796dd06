package fram

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/abiosoft/ishell"

	"github.com/robotalks/framlog.go/pkg/cli/sh"
	"github.com/robotalks/framlog.go/pkg/framlog"
)

var (
	// ReplayCmd prints the log recovered from the store.
	ReplayCmd = ishell.Cmd{
		Name:    "replay",
		Aliases: []string{"show", "r"},
		Help:    "",
		Func: func(c *ishell.Context) {
			s := sh.ShellFrom(c)
			text, err := s.Logger.ReadAll()
			if err != nil {
				c.Err(err)
				return
			}
			if s.OutputJSON {
				out, err := json.Marshal(map[string]string{"log": text})
				if err != nil {
					c.Err(err)
					return
				}
				c.Println(string(out))
				return
			}
			var out bytes.Buffer
			framlog.Render(&out, text)
			c.Print(out.String())
		},
	}

	// AppendCmd appends one record to the log.
	AppendCmd = ishell.Cmd{
		Name:    "append",
		Aliases: []string{"a"},
		Help:    "TEXT...",
		Func: func(c *ishell.Context) {
			if len(c.Args) == 0 {
				c.Err(fmt.Errorf("text expected"))
				return
			}
			s := sh.ShellFrom(c)
			if err := s.Logger.Println("%s", strings.Join(c.Args, " ")); err != nil {
				c.Err(err)
				return
			}
			c.Println("OK")
		},
	}

	// DumpCmd prints a hex dump of stored bytes.
	DumpCmd = ishell.Cmd{
		Name:    "dump",
		Aliases: []string{"d"},
		Help:    "[OFFSET [COUNT]]",
		Func: func(c *ishell.Context) {
			s := sh.ShellFrom(c)
			off, count := 0, 256
			var err error
			if len(c.Args) > 0 {
				if off, err = strconv.Atoi(c.Args[0]); err != nil {
					c.Err(err)
					return
				}
			}
			if len(c.Args) > 1 {
				if count, err = strconv.Atoi(c.Args[1]); err != nil {
					c.Err(err)
					return
				}
			}
			if max := s.Store.Capacity() - off; count > max {
				count = max
			}
			if off < 0 || count <= 0 {
				c.Err(fmt.Errorf("range out of store"))
				return
			}
			buf := make([]byte, count)
			if err = s.Store.ReadAt(off, buf); err != nil {
				c.Err(err)
				return
			}
			c.Printf("%d bytes at %d:\n", count, off)
			c.Print(hex.Dump(buf))
		},
	}

	// EraseCmd clears the stored log. "all" also zeroes the window.
	EraseCmd = ishell.Cmd{
		Name: "erase",
		Help: "[all]",
		Func: func(c *ishell.Context) {
			s := sh.ShellFrom(c)
			if len(c.Args) > 0 && c.Args[0] == "all" {
				zero := make([]byte, s.Logger.Window())
				if err := framlog.WriteChunked(s.Store, 0, zero); err != nil {
					c.Err(err)
					return
				}
			}
			if err := s.Logger.Reset(); err != nil {
				c.Err(err)
				return
			}
			c.Println("OK")
		},
	}
)

func init() {
	sh.AddCmds(
		&ReplayCmd,
		&AppendCmd,
		&DumpCmd,
		&EraseCmd,
	)
}
