package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/op/go-logging"
	"github.com/spf13/cobra"

	"todoapi/config"
	"todoapi/database"
	"todoapi/database/model"
	"todoapi/logger"
	"todoapi/repository"
	"todoapi/util/crypto"
	"todoapi/web"
)

func runWebServer() {
	log.Printf("%v %v", config.GetName(), config.GetVersion())

	switch config.GetLogLevel() {
	case config.Debug:
		logger.InitLogger(logging.DEBUG)
	case config.Info:
		logger.InitLogger(logging.INFO)
	case config.Warn:
		logger.InitLogger(logging.WARNING)
	case config.Error:
		logger.InitLogger(logging.ERROR)
	default:
		log.Fatal("unknown log level:", config.GetLogLevel())
	}

	err := database.InitDB(config.GetDBPath())
	if err != nil {
		log.Fatal(err)
	}

	server := web.NewServer()
	err = server.Start()
	if err != nil {
		log.Println(err)
		return
	}

	sigCh := make(chan os.Signal, 1)
	// Trap shutdown signals
	signal.Notify(sigCh, syscall.SIGHUP, syscall.SIGTERM, syscall.SIGINT)
	for {
		sig := <-sigCh

		switch sig {
		case syscall.SIGHUP:
			err := server.Stop()
			if err != nil {
				logger.Warning("stop server err:", err)
			}
			server = web.NewServer()
			err = server.Start()
			if err != nil {
				log.Println(err)
				return
			}
		default:
			if err := server.Stop(); err != nil {
				logger.Warning("stop server err:", err)
			}
			logger.CloseLogger()
			return
		}
	}
}

func migrateDb() {
	fmt.Println("Start migrating database...")
	if err := database.InitDB(config.GetDBPath()); err != nil {
		log.Fatal(err)
	}
	fmt.Println("Migration done!")
}

func showSetting(show bool) {
	if !show {
		return
	}
	if err := database.InitDB(config.GetDBPath()); err != nil {
		fmt.Println(err)
		return
	}
	store := repository.NewStore(database.GetDB())
	users, err := store.Users().FindAll()
	if err != nil {
		fmt.Println("get users failed:", err)
		return
	}
	fmt.Println("current users as follows:")
	for _, u := range users {
		fmt.Printf("id: %d  username: %s  role: %d\n", u.Id, u.Username, u.Role)
	}
	fmt.Println("port:", config.GetPort())
}

func updateSetting(username string, password string) {
	if username == "" || password == "" {
		fmt.Println("username and password are both required")
		return
	}
	if err := database.InitDB(config.GetDBPath()); err != nil {
		fmt.Println(err)
		return
	}
	store := repository.NewStore(database.GetDB())
	hash, err := crypto.HashPasswordAsBcrypt(password)
	if err != nil {
		fmt.Println("hash password failed:", err)
		return
	}
	user, err := store.Users().FindByUsername(username)
	if errors.Is(err, repository.ErrNotFound) {
		user, err = model.NewUser(username, hash, model.RoleAdmin, model.SystemActor)
		if err != nil {
			fmt.Println("set username and password failed:", err)
			return
		}
	} else if err != nil {
		fmt.Println("set username and password failed:", err)
		return
	} else {
		user.SetPassword(hash, model.SystemActor)
	}
	if err := store.Users().Save(user); err != nil {
		fmt.Println("set username and password failed:", err)
		return
	}
	fmt.Println("set username and password success")
}

func main() {
	config.LoadEnv()

	var rootCmd = &cobra.Command{
		Use: "todoapi",
	}

	var runCmd = &cobra.Command{
		Use:   "run",
		Short: "Run the web server",
		Run: func(cmd *cobra.Command, args []string) {
			runWebServer()
		},
	}

	var migrateCmd = &cobra.Command{
		Use:   "migrate",
		Short: "Run the schema migration and exit",
		Run: func(cmd *cobra.Command, args []string) {
			migrateDb()
		},
	}

	var settingCmd = &cobra.Command{
		Use:   "setting",
		Short: "Manage bootstrap settings",
	}

	var showCmd = &cobra.Command{
		Use:   "show",
		Short: "Show current users and port",
		Run: func(cmd *cobra.Command, args []string) {
			showSetting(true)
		},
	}

	var updateCmd = &cobra.Command{
		Use:   "update",
		Short: "Set an admin username and password",
		Run: func(cmd *cobra.Command, args []string) {
			username, _ := cmd.Flags().GetString("username")
			password, _ := cmd.Flags().GetString("password")
			updateSetting(username, password)
		},
	}

	updateCmd.Flags().String("username", "", "set admin username")
	updateCmd.Flags().String("password", "", "set admin password")

	settingCmd.AddCommand(showCmd, updateCmd)
	rootCmd.AddCommand(runCmd, migrateCmd, settingCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
