package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/cyclegraph/pkg/cache"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the import cache",
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

// cacheClearCommand creates the "cache clear" subcommand.
func (c *CLI) cacheClearCommand() *cobra.Command {
	var flags projectFlags

	cmd := &cobra.Command{
		Use:   "clear [root]",
		Short: "Remove all cached imports",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := flags.load(cmd, args)
			if err != nil {
				return err
			}

			switch cfg.Cache.Backend {
			case "none":
				printInfo("Caching is disabled")
				return nil
			case "redis":
				rc, err := cache.NewRedisCache(ctx, cache.RedisConfig{Addr: cfg.Cache.RedisAddr})
				if err != nil {
					return fmt.Errorf("connect redis: %w", err)
				}
				defer rc.Close()
				n, err := rc.Clear(ctx, cfg.Cache.Prefix+"*")
				if err != nil {
					return err
				}
				printSuccess("Cleared %d cached entries", n)
				printDetail("Redis: %s (prefix %s)", cfg.Cache.RedisAddr, cfg.Cache.Prefix)
				return nil
			default:
				dir, err := fileCacheDir(cfg.Cache)
				if err != nil {
					return fmt.Errorf("get cache dir: %w", err)
				}
				fc, err := cache.NewFileCache(dir)
				if err != nil {
					return err
				}
				n, err := fc.Clear()
				if err != nil {
					return err
				}
				printSuccess("Cleared %d cached entries", n)
				printDetail("Directory: %s", dir)
				return nil
			}
		},
	}

	flags.register(cmd)
	return cmd
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	var flags projectFlags

	cmd := &cobra.Command{
		Use:   "path [root]",
		Short: "Print where imports are cached",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.load(cmd, args)
			if err != nil {
				return err
			}
			switch cfg.Cache.Backend {
			case "none":
				printKeyValue("backend", "none")
			case "redis":
				printKeyValue("backend", "redis")
				printKeyValue("address", cfg.Cache.RedisAddr)
				printKeyValue("prefix", cfg.Cache.Prefix)
			default:
				dir, err := fileCacheDir(cfg.Cache)
				if err != nil {
					return fmt.Errorf("get cache dir: %w", err)
				}
				printKeyValue("backend", "file")
				printKeyValue("directory", dir)
			}
			printKeyValue("ttl", cfg.Cache.TTL.String())
			return nil
		},
	}

	flags.register(cmd)
	return cmd
}
