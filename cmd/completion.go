package cmd

import (
	"fmt"
	"os"
)

// Completion outputs shell completion scripts
func Completion(shell string) {
	switch shell {
	case "bash":
		fmt.Print(bashCompletion)
	case "zsh":
		fmt.Print(zshCompletion)
	case "fish":
		fmt.Print(fishCompletion)
	default:
		fmt.Fprintf(os.Stderr, "Unknown shell: %s\nSupported: bash, zsh, fish\n", shell)
		os.Exit(1)
	}
}

const bashCompletion = `_shed() {
    local cur prev words cword
    _init_completion || return

    local commands="encrypt decrypt randstr eol port tcp transcode prune history keyring elevated help completion"

    if [[ $cword -eq 1 ]]; then
        COMPREPLY=($(compgen -W "$commands" -- "$cur"))
        return
    fi

    local cmd="${words[1]}"
    case "$cmd" in
        encrypt)
            if [[ "$cur" == -* ]]; then
                COMPREPLY=($(compgen -W "-r --remove --recurse --force --dry-run --output --include --exclude --keyring --no-journal" -- "$cur"))
            else
                _filedir
            fi
            ;;
        decrypt)
            if [[ "$cur" == -* ]]; then
                COMPREPLY=($(compgen -W "--keep --recurse --force --dry-run --output --include --exclude --keyring --no-journal" -- "$cur"))
            else
                _filedir
            fi
            ;;
        eol)
            if [[ "$cur" == -* ]]; then
                COMPREPLY=($(compgen -W "--to --recurse --dry-run --diff --include --exclude" -- "$cur"))
            else
                _filedir
            fi
            ;;
        randstr)
            COMPREPLY=($(compgen -W "-n --count --no-lower --no-upper --no-digits --no-symbols --exclude" -- "$cur"))
            ;;
        transcode)
            if [[ "$cur" == -* ]]; then
                COMPREPLY=($(compgen -W "--preset --crf --scale --audio-copy --output --force --dry-run" -- "$cur"))
            else
                _filedir
            fi
            ;;
        prune)
            _filedir -d
            ;;
        keyring)
            COMPREPLY=($(compgen -W "save delete check" -- "$cur"))
            ;;
        help)
            COMPREPLY=($(compgen -W "$commands" -- "$cur"))
            ;;
        completion)
            COMPREPLY=($(compgen -W "bash zsh fish" -- "$cur"))
            ;;
    esac
}

complete -F _shed shed
`

const zshCompletion = `#compdef shed

_shed() {
    local -a commands
    commands=(
        'encrypt:Encrypt files with a passphrase'
        'decrypt:Decrypt previously encrypted files'
        'randstr:Generate random strings'
        'eol:Convert line endings'
        'port:Test TCP/UDP port reachability'
        'tcp:Send a raw TCP request'
        'transcode:Re-encode video files with ffmpeg'
        'prune:Remove outdated versioned directories'
        'history:Show past encrypt/decrypt runs'
        'keyring:Manage passphrases in the OS keyring'
        'elevated:Check for administrative privileges'
        'help:Show help for a command'
        'completion:Generate shell completions'
    )

    if (( CURRENT == 2 )); then
        _describe 'command' commands
        return
    fi

    case "$words[2]" in
        encrypt|decrypt|eol|transcode)
            _files
            ;;
        prune)
            _files -/
            ;;
        keyring)
            _values 'action' save delete check
            ;;
        completion)
            _values 'shell' bash zsh fish
            ;;
        help)
            _describe 'command' commands
            ;;
    esac
}

_shed
`

const fishCompletion = `complete -c shed -f

complete -c shed -n '__fish_use_subcommand' -a encrypt -d 'Encrypt files with a passphrase'
complete -c shed -n '__fish_use_subcommand' -a decrypt -d 'Decrypt previously encrypted files'
complete -c shed -n '__fish_use_subcommand' -a randstr -d 'Generate random strings'
complete -c shed -n '__fish_use_subcommand' -a eol -d 'Convert line endings'
complete -c shed -n '__fish_use_subcommand' -a port -d 'Test TCP/UDP port reachability'
complete -c shed -n '__fish_use_subcommand' -a tcp -d 'Send a raw TCP request'
complete -c shed -n '__fish_use_subcommand' -a transcode -d 'Re-encode video files with ffmpeg'
complete -c shed -n '__fish_use_subcommand' -a prune -d 'Remove outdated versioned directories'
complete -c shed -n '__fish_use_subcommand' -a history -d 'Show past encrypt/decrypt runs'
complete -c shed -n '__fish_use_subcommand' -a keyring -d 'Manage passphrases in the OS keyring'
complete -c shed -n '__fish_use_subcommand' -a elevated -d 'Check for administrative privileges'
complete -c shed -n '__fish_use_subcommand' -a completion -d 'Generate shell completions'
complete -c shed -n '__fish_use_subcommand' -a help -d 'Show help for a command'

complete -c shed -n '__fish_seen_subcommand_from encrypt decrypt eol transcode' -F
complete -c shed -n '__fish_seen_subcommand_from keyring' -a 'save delete check'
complete -c shed -n '__fish_seen_subcommand_from completion' -a 'bash zsh fish'
`
