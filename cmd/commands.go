package main

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/adriana13032025/sistema-reservas-fase1/internal/config"
	"github.com/adriana13032025/sistema-reservas-fase1/internal/db"
	"github.com/adriana13032025/sistema-reservas-fase1/internal/logger"
	"github.com/adriana13032025/sistema-reservas-fase1/internal/model"
	"github.com/adriana13032025/sistema-reservas-fase1/internal/repository"
	"github.com/adriana13032025/sistema-reservas-fase1/internal/tui"
	"github.com/adriana13032025/sistema-reservas-fase1/internal/worker"
	"github.com/adriana13032025/sistema-reservas-fase1/service"
)

// cli: 명령 사이에서 공유하는 플래그와 설정
type cli struct {
	envFile string
	cfg     config.Config
}

func newRootCmd() *cobra.Command {
	c := &cli{}

	root := &cobra.Command{
		Use:          "reservamesa",
		Short:        "Busca restaurantes y reserva una mesa",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(c.envFile)
			if err != nil {
				return err
			}
			c.cfg = cfg
			return nil
		},
		RunE: c.runTUI,
	}
	root.PersistentFlags().StringVar(&c.envFile, "env-file", ".env", "archivo .env opcional")

	root.AddCommand(
		c.seedCmd(),
		c.restaurantsCmd(),
		c.reserveCmd(),
		c.whoamiCmd(),
		c.signoutCmd(),
	)
	return root
}

// open: 헤드리스 명령용. 로그는 stderr로 보냅니다.
func (c *cli) open(cmd *cobra.Command) (*system, error) {
	log, err := logger.New(c.cfg.LogLevel, cmd.ErrOrStderr())
	if err != nil {
		return nil, err
	}
	return initSystem(cmd.Context(), c.cfg, log)
}

// connect: 세션을 시작하고 아이덴티티가 준비될 때까지 기다립니다.
func (c *cli) connect(cmd *cobra.Command) (*system, error) {
	sys, err := c.open(cmd)
	if err != nil {
		return nil, err
	}
	if _, err := sys.svc.Connect(cmd.Context()); err != nil {
		sys.Close()
		return nil, userError(err)
	}
	return sys, nil
}

func (c *cli) runTUI(cmd *cobra.Command, args []string) error {
	log, closer, err := logger.OpenFile(c.cfg.LogLevel, c.cfg.LogFile)
	if err != nil {
		return err
	}
	defer closer.Close()

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	sys, err := initSystem(ctx, c.cfg, log)
	if err != nil {
		return err
	}
	defer sys.Close()

	if sys.backend.Refresh != nil {
		w := worker.NewRefreshWorker(worker.RefreshFunc(sys.backend.Refresh), c.cfg.RefreshInterval, sys.log.WithField("component", "refresh"))
		go w.Run(ctx)
	}

	p := tea.NewProgram(tui.New(ctx, sys.svc, sys.log), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("failed to run terminal client: %w", err)
	}
	return nil
}

func (c *cli) seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Carga el catálogo de demostración en la base local",
		RunE: func(cmd *cobra.Command, args []string) error {
			if c.cfg.Backend != config.BackendLocal {
				return fmt.Errorf("seed solo está disponible con el backend local (actual: %s)", c.cfg.Backend)
			}
			sys, err := c.open(cmd)
			if err != nil {
				return err
			}
			defer sys.Close()

			n, err := db.Seed(cmd.Context(), repository.NewRestaurantRepository(sys.conn), db.DemoCatalog())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d restaurantes insertados en %s\n", n, c.cfg.DBPath)
			return nil
		},
	}
}

func (c *cli) restaurantsCmd() *cobra.Command {
	var query service.CatalogQuery

	cmd := &cobra.Command{
		Use:   "restaurants",
		Short: "Lista los restaurantes disponibles",
		RunE: func(cmd *cobra.Command, args []string) error {
			sys, err := c.connect(cmd)
			if err != nil {
				return err
			}
			defer sys.Close()

			restaurants, err := sys.svc.FindRestaurants(cmd.Context(), query)
			if err != nil {
				return userError(err)
			}
			if len(restaurants) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No se encontraron restaurantes que coincidan con la búsqueda.")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), restaurantTable(restaurants))
			return nil
		},
	}
	cmd.Flags().StringVar(&query.Search, "search", "", "texto a buscar en el nombre")
	cmd.Flags().StringVar(&query.Cuisine, "cuisine", service.AllCuisines, "tipo de cocina")
	return cmd
}

func restaurantTable(restaurants []model.Restaurant) string {
	rows := make([][]string, 0, len(restaurants))
	for _, r := range restaurants {
		rows = append(rows, []string{r.ID, r.Name, r.Cuisine, strconv.FormatFloat(r.Rating, 'f', 1, 64)})
	}
	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers("ID", "Nombre", "Cocina", "Valoración").
		Rows(rows...).
		String()
}

func (c *cli) reserveCmd() *cobra.Command {
	var restaurantID string
	form := service.NewReservationForm()

	cmd := &cobra.Command{
		Use:   "reserve",
		Short: "Reserva una mesa",
		RunE: func(cmd *cobra.Command, args []string) error {
			sys, err := c.connect(cmd)
			if err != nil {
				return err
			}
			defer sys.Close()

			ack, err := sys.svc.Reserve(cmd.Context(), restaurantID, form)
			if err != nil {
				return userError(err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s (id: %s)\n", service.MsgReservationOK, ack.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&restaurantID, "restaurant", "", "id del restaurante")
	cmd.Flags().StringVar(&form.Name, "name", "", "nombre para la reserva")
	cmd.Flags().StringVar(&form.Date, "date", "", "fecha (AAAA-MM-DD)")
	cmd.Flags().StringVar(&form.Time, "time", "", "hora (HH:MM)")
	cmd.Flags().IntVar(&form.PartySize, "people", service.DefaultPartySize, "número de personas")
	return cmd
}

func (c *cli) whoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Muestra la identidad anónima actual",
		RunE: func(cmd *cobra.Command, args []string) error {
			sys, err := c.connect(cmd)
			if err != nil {
				return err
			}
			defer sys.Close()

			st := sys.svc.Session.State()
			profile := service.ProfileFor(st.Identity)
			fmt.Fprintf(cmd.OutOrStdout(), "%s (%s)\nuid: %s\nnivel: %s\n", profile.Name, profile.Handle, st.Identity.UID, profile.Level)
			return nil
		},
	}
}

// signoutCmd: Session을 거치지 않고 제공자에 직접 요청합니다 (Session은 아이덴티티가 없으면 새로 만듦).
func (c *cli) signoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "signout",
		Short: "Cierra la sesión anónima guardada",
		RunE: func(cmd *cobra.Command, args []string) error {
			sys, err := c.open(cmd)
			if err != nil {
				return err
			}
			defer sys.Close()

			var current *model.Identity
			unsubscribe, err := sys.backend.Identity.Observe(cmd.Context(), func(id *model.Identity) {
				if current == nil {
					current = id
				}
			})
			if err != nil {
				return err
			}
			defer unsubscribe()

			if current == nil {
				fmt.Fprintln(cmd.OutOrStdout(), "No hay una sesión activa.")
				return nil
			}
			if err := sys.backend.Identity.SignOut(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Sesión %s cerrada.\n", current.ShortUID())
			return nil
		},
	}
}

// userError: 서비스 오류에 사용자용 문구를 붙입니다.
func userError(err error) error {
	if _, ok := service.KindOf(err); !ok {
		return err
	}
	return fmt.Errorf("%s (%w)", service.Message(err), err)
}
