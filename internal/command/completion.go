// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/ecsanywhere/ecsanywhere/internal/meta"
)

const bashCompletionScript = `# bash completion for ecsanywhere
# Fallback if bash-completion is not installed
if ! declare -F _get_comp_words_by_ref >/dev/null 2>&1; then
  _get_comp_words_by_ref() {
    cur=${COMP_WORDS[COMP_CWORD]}
    prev=${COMP_WORDS[COMP_CWORD-1]}
  }
fi

_ecsanywhere()
{
    local cur prev cmd
    COMPREPLY=()
    _get_comp_words_by_ref -n : cur prev

    if [[ ${COMP_CWORD} -eq 1 ]]; then
        COMPREPLY=( $(compgen -W "synth list outputs register diff publish completion --help --version" -- "$cur") )
        return 0
    fi

    cmd=${COMP_WORDS[1]}
    local common="--color -c --output -o --padding --sort -s --titles -t"

    case "$cmd" in
        synth)
            local opts="$common --outdir --nag --no-snapshot"
            ;;
        list)
            local opts="$common --types"
            ;;
        outputs)
            local opts="$common --unresolved"
            ;;
        register)
            local opts="$common"
            ;;
        diff)
            local opts="$common --filter -f --pick --exit-code"
            ;;
        publish)
            local opts="$common --bucket -b --prefix --profile --region --retries"
            ;;
        completion)
            COMPREPLY=( $(compgen -W "bash zsh" -- "$cur") )
            return 0
            ;;
        *)
            local opts="$common"
            ;;
    esac

    if [[ "$prev" == "--output" || "$prev" == "-o" ]]; then
        COMPREPLY=( $(compgen -W "text json raw yaml" -- "$cur") )
        return 0
    fi

    if [[ "$prev" == "--outdir" ]]; then
        COMPREPLY=( $(compgen -o dirnames -- "$cur") )
        return 0
    fi

    if [[ "$cur" == -* || "$cmd" == "synth" ]]; then
        COMPREPLY=( $(compgen -W "$opts" -- "$cur") )
        return 0
    fi

    # Otherwise the optional assembly DIR positional.
    COMPREPLY=( $(compgen -o dirnames -- "$cur") )
    return 0
}

complete -F _ecsanywhere ecsanywhere
`

const zshCompletionScript = `#compdef ecsanywhere

_ecsanywhere() {
  local -a cmds
  cmds=(
    'synth:synthesize the cloud assembly'
    'list:list the stacks of a cloud assembly'
    'outputs:list the declared stack outputs'
    'register:print the steps that register an external instance'
    'diff:diff assembly templates against their last snapshot'
    'publish:upload the assembly templates to S3'
    'completion:generate shell completion script'
  )

  local -a common
  common=(
    '(-c --color)'{-c,--color}'[enable colored text]'
    '(-o --output)'{-o,--output}'[output format]:format:(text json raw yaml)'
    '--padding[spaces between columns]:padding'
    '(-s --sort)'{-s,--sort}'[sort columns]:columns'
    '(-t --titles)'{-t,--titles}'[show titles]'
  )

  if (( CURRENT == 2 )); then
    _describe -t commands 'ecsanywhere commands' cmds
    return
  fi

  case $words[2] in
    synth)
      _arguments -C \
        $common \
        '--outdir[assembly output directory]:dir:_directories' \
        '--nag[run cdk-nag checks]' \
        '--no-snapshot[do not store template snapshots]'
      ;;
    list)
      _arguments -C $common '--types[count resources per type]' '::DIR:_directories'
      ;;
    outputs)
      _arguments -C $common '--unresolved[show intrinsic functions]' '::DIR:_directories'
      ;;
    register)
      _arguments -C $common '::DIR:_directories'
      ;;
    diff)
      _arguments -C \
        $common \
        '(-f --filter)'{-f,--filter}'[template sections to ignore]:sections' \
        '--pick[choose stacks interactively]' \
        '--exit-code[fail when templates differ]' \
        '::DIR:_directories'
      ;;
    publish)
      _arguments -C \
        $common \
        '(-b --bucket)'{-b,--bucket}'[S3 bucket]:bucket' \
        '--prefix[S3 key prefix]:prefix' \
        '--profile[AWS profile]:profile' \
        '--region[AWS region]:region' \
        '--retries[maximum attempts per upload]:n' \
        '::DIR:_directories'
      ;;
    completion)
      _arguments '1: :((bash zsh))'
      ;;
    *)
      _arguments -C $common '*:directory:_directories'
      ;;
  esac
}

# If this file is sourced directly (not autoloaded via fpath), ensure compsys
# is initialized and register the completion
if ! typeset -f compdef >/dev/null 2>&1; then
  autoload -Uz compinit && compinit -i
fi
compdef _ecsanywhere ecsanywhere
`

func completionCommandAction(ctx context.Context, cmd *cli.Command) error {
	w := writer(cmd)

	shell := cmd.Args().First()
	if shell == "" {
		sh := os.Getenv("SHELL")
		switch {
		case strings.HasSuffix(sh, "zsh"):
			shell = "zsh"
		case strings.HasSuffix(sh, "bash"):
			shell = "bash"
		}
	}

	switch shell {
	case "bash":
		fmt.Fprint(w, bashCompletionScript)
	case "zsh":
		fmt.Fprint(w, zshCompletionScript)
	default:
		return fmt.Errorf("usage: ecsanywhere completion [bash|zsh]")
	}
	return nil
}

func completionCommandBuilder(meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "completion",
		Usage:     "generate shell completion script",
		UsageText: "ecsanywhere completion [bash|zsh]",
		Metadata: map[string]any{
			"meta": meta,
		},
		Action: completionCommandAction,
	}
}
