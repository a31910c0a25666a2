package cli

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/etimsclient/internal/client/models"
)

var errUsage = errors.New("wrong arguments")

func (a *App) commands() []command {
	return []command{
		{name: "login", usage: "log in", run: a.Login},
		{name: "adminlogin", usage: "log in with a staff account", run: a.AdminLogin},
		{name: "register", usage: "create an account", run: a.Register},
		{name: "logout", usage: "log out", run: a.Logout},
		{name: "status", usage: "show session and server state", run: a.Status},
		{name: "discover", usage: "[url...] - find a reachable server", run: a.Discover},
		{name: "health", usage: "show server health", run: a.Health},
		{name: "settings", usage: "[auto=on|off] [interval=N] [wifi=on|off] [devices=on|off] - show or change sync settings", run: a.Settings},

		{name: "dashboard", usage: "show dashboard statistics", auth: true, run: a.Dashboard},
		{name: "invoices", usage: "[page] [limit] - list invoices", auth: true, run: a.Invoices},
		{name: "invoice", usage: "<id> - show one invoice", auth: true, run: a.Invoice},
		{name: "resync", usage: "<id> - resubmit an invoice", auth: true, run: a.Resync},
		{name: "retryall", usage: "resubmit all failed invoices", auth: true, run: a.RetryAll},
		{name: "devices", usage: "list devices", auth: true, run: a.Devices},
		{name: "syncdevice", usage: "<id> - sync one device", auth: true, run: a.SyncDevice},
		{name: "certify", usage: "<id> - certify a device", auth: true, run: a.Certify},
		{name: "vscu", usage: "show VSCU status", auth: true, run: a.VSCU},
		{name: "sync", usage: "run a full sync", auth: true, run: a.Sync},
		{name: "queue", usage: "show the retry queue", auth: true, run: a.Queue},
		{name: "processqueue", usage: "process the retry queue", auth: true, run: a.ProcessQueue},
		{name: "env", usage: "[sandbox|production] - show or switch the KRA environment", auth: true, run: a.Env},
		{name: "logs", usage: "[level] [limit] - show system logs", auth: true, run: a.Logs},
		{name: "companies", usage: "list companies", auth: true, run: a.Companies},
	}
}

func requireID(args []string, usage string) (string, error) {
	if len(args) != 1 || args[0] == "" {
		return "", fmt.Errorf("%w, usage: %s", errUsage, usage)
	}
	return args[0], nil
}

func optionalInt(args []string, i int, name string) (int, error) {
	if len(args) <= i {
		return 0, nil
	}
	n, err := strconv.Atoi(args[i])
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%w: %s must be a non-negative number", errUsage, name)
	}
	return n, nil
}

func (a *App) Dashboard(ctx context.Context, _ []string) error {
	s, err := a.admin.DashboardStats(ctx)
	if err != nil {
		return err
	}
	table(a.out, []string{"METRIC", "VALUE"}, [][]string{
		{"Invoices", strconv.Itoa(s.TotalInvoices)},
		{"Pending", strconv.Itoa(s.PendingInvoices)},
		{"Failed", strconv.Itoa(s.FailedInvoices)},
		{"Revenue", s.TotalRevenue.String()},
		{"Tax", s.TotalTax.String()},
		{"Active devices", strconv.Itoa(s.ActiveDevices)},
		{"Last sync", fmtTime(s.LastSync)},
	})
	return nil
}

func (a *App) Invoices(ctx context.Context, args []string) error {
	page, err := optionalInt(args, 0, "page")
	if err != nil {
		return err
	}
	limit, err := optionalInt(args, 1, "limit")
	if err != nil {
		return err
	}

	res, err := a.invoices.List(ctx, page, limit)
	if err != nil {
		return err
	}
	if len(res.Results) == 0 {
		fmt.Fprintln(a.out, "No invoices")
		return nil
	}

	rows := make([][]string, 0, len(res.Results))
	for _, inv := range res.Results {
		rows = append(rows, []string{
			inv.ID.String(), inv.InvoiceNumber, inv.Status, inv.TotalAmount.String(), fmtTime(inv.CreatedAt),
		})
	}
	table(a.out, []string{"ID", "NUMBER", "STATUS", "TOTAL", "CREATED"}, rows)
	fmt.Fprintf(a.out, "%d of %d\n", len(res.Results), res.Count)
	if res.HasNext() {
		fmt.Fprintln(a.out, "More available, pass a page number")
	}
	return nil
}

func (a *App) Invoice(ctx context.Context, args []string) error {
	id, err := requireID(args, "invoice <id>")
	if err != nil {
		return err
	}
	inv, err := a.invoices.Get(ctx, id)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Invoice %s (%s)\n", orDash(inv.InvoiceNumber), inv.ID)
	fmt.Fprintf(a.out, "Status:   %s\n", inv.Status)
	fmt.Fprintf(a.out, "Receipt:  %s\n", orDash(inv.ReceiptNumber))
	fmt.Fprintf(a.out, "Customer: %s %s\n", orDash(inv.CustomerName), inv.CustomerPin)
	fmt.Fprintf(a.out, "Total:    %s (tax %s)\n", inv.TotalAmount, inv.TaxAmount)
	if inv.LastError != "" {
		fmt.Fprintf(a.out, "Error:    %s (retries: %d)\n", inv.LastError, inv.RetryCount)
	}
	if len(inv.Items) > 0 {
		rows := make([][]string, 0, len(inv.Items))
		for _, it := range inv.Items {
			rows = append(rows, []string{it.Description, it.Quantity.String(), it.UnitPrice.String(), it.TaxType, it.Total.String()})
		}
		table(a.out, []string{"ITEM", "QTY", "PRICE", "TAX", "TOTAL"}, rows)
	}
	return nil
}

func (a *App) Resync(ctx context.Context, args []string) error {
	id, err := requireID(args, "resync <id>")
	if err != nil {
		return err
	}
	msg, err := a.invoices.Resync(ctx, id)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, orDefault(msg, "Invoice queued for resync"))
	return nil
}

func (a *App) RetryAll(ctx context.Context, _ []string) error {
	res, err := a.invoices.RetryAll(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, orDefault(res.Message, fmt.Sprintf("%d invoices queued", res.Queued)))
	return nil
}

func (a *App) Devices(ctx context.Context, _ []string) error {
	devices, err := a.devices.List(ctx)
	if err != nil {
		return err
	}
	if len(devices) == 0 {
		fmt.Fprintln(a.out, "No devices")
		return nil
	}
	rows := make([][]string, 0, len(devices))
	for _, d := range devices {
		rows = append(rows, []string{d.ID.String(), d.SerialNumber, orDash(d.DeviceName), d.Status, yesNo(d.IsCertified), fmtTime(d.LastSync)})
	}
	table(a.out, []string{"ID", "SERIAL", "NAME", "STATUS", "CERTIFIED", "LAST SYNC"}, rows)
	return nil
}

func (a *App) SyncDevice(ctx context.Context, args []string) error {
	id, err := requireID(args, "syncdevice <id>")
	if err != nil {
		return err
	}
	res, err := a.devices.Sync(ctx, id)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, orDefault(res.Message, fmt.Sprintf("Synced %d, failed %d", res.Synced, res.Failed)))
	return nil
}

func (a *App) Certify(ctx context.Context, args []string) error {
	id, err := requireID(args, "certify <id>")
	if err != nil {
		return err
	}
	cert, err := a.devices.Certify(ctx, id)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Device %s: %s\n", id, orDash(cert.Status))
	if cert.CertificateID != "" {
		fmt.Fprintf(a.out, "Certificate: %s, expires %s\n", cert.CertificateID, fmtTime(cert.ExpiresAt))
	}
	return nil
}

func (a *App) VSCU(ctx context.Context, _ []string) error {
	s, err := a.admin.VSCUStatus(ctx)
	if err != nil {
		return err
	}
	state := "online"
	if !s.Online {
		state = fmt.Sprintf("offline for %s h", s.OfflineHours)
		if !s.OfflineAllowed {
			state += ", offline limit exceeded"
		}
	}
	fmt.Fprintf(a.out, "VSCU %s (%s)\n", orDash(s.Status), state)
	fmt.Fprintf(a.out, "Pending: %d, last sync %s\n", s.PendingCount, fmtTime(s.LastSync))
	return nil
}

func (a *App) Sync(ctx context.Context, _ []string) error {
	report, err := a.syncs.Run(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "VSCU: synced %d, failed %d\n", report.VSCU.Synced, report.VSCU.Failed)
	for _, d := range report.Devices {
		if d.Err != nil {
			fmt.Fprintf(a.out, "Device %s: %s\n", d.DeviceID, formatError(d.Err))
			continue
		}
		fmt.Fprintf(a.out, "Device %s: synced %d\n", d.DeviceID, d.Result.Synced)
	}
	fmt.Fprintf(a.out, "Sync finished, %d device(s) failed\n", report.Failed())
	return nil
}

// Settings prints the sync settings, or updates them from key=value args.
func (a *App) Settings(ctx context.Context, args []string) error {
	s, err := a.syncs.Settings(ctx)
	if err != nil {
		return err
	}

	if len(args) > 0 {
		for _, arg := range args {
			if err := applySetting(&s, arg); err != nil {
				return err
			}
		}
		if err := a.syncs.SaveSettings(ctx, s); err != nil {
			return err
		}
		fmt.Fprintln(a.out, "Settings saved")
	}

	fmt.Fprintf(a.out, "auto=%s interval=%d wifi=%s devices=%s\n",
		onOff(s.AutoSync), s.IntervalMinutes, onOff(s.WifiOnly), onOff(s.SyncDevices))
	return nil
}

func applySetting(s *models.SyncSettings, arg string) error {
	key, value, ok := strings.Cut(arg, "=")
	if !ok {
		return fmt.Errorf("%w: expected key=value, got %q", errUsage, arg)
	}

	if key == "interval" {
		n, err := strconv.Atoi(value)
		if err != nil || n <= 0 {
			return fmt.Errorf("%w: interval must be a positive number of minutes", errUsage)
		}
		s.IntervalMinutes = n
		return nil
	}

	var on bool
	switch value {
	case "on", "true", "yes":
		on = true
	case "off", "false", "no":
	default:
		return fmt.Errorf("%w: %s must be on or off", errUsage, key)
	}

	switch key {
	case "auto":
		s.AutoSync = on
	case "wifi":
		s.WifiOnly = on
	case "devices":
		s.SyncDevices = on
	default:
		return fmt.Errorf("%w: unknown setting %q", errUsage, key)
	}
	return nil
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

func (a *App) Health(ctx context.Context, _ []string) error {
	h, err := a.admin.Health(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Status: %s\n", h.Status)

	components := make(map[string]string, len(h.Components)+2)
	for k, v := range h.Components {
		components[k] = v
	}
	if h.Database != "" {
		components["database"] = h.Database
	}
	if h.KRA != "" {
		components["kra"] = h.KRA
	}
	names := make([]string, 0, len(components))
	for k := range components {
		names = append(names, k)
	}
	sort.Strings(names)
	for _, n := range names {
		fmt.Fprintf(a.out, "  %s: %s\n", n, components[n])
	}
	return nil
}

func (a *App) Queue(ctx context.Context, _ []string) error {
	q, err := a.admin.RetryQueue(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Pending %d, processing %d, failed %d, completed %d\n", q.Pending, q.Processing, q.Failed, q.Completed)
	if !q.NextRunAt.IsZero() {
		fmt.Fprintf(a.out, "Next run: %s\n", fmtTime(q.NextRunAt))
	}
	return nil
}

func (a *App) ProcessQueue(ctx context.Context, _ []string) error {
	msg, err := a.admin.ProcessRetryQueue(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, orDefault(msg, "Retry queue processing started"))
	return nil
}

func (a *App) Env(ctx context.Context, args []string) error {
	var (
		env models.EnvironmentStatus
		err error
	)
	switch len(args) {
	case 0:
		env, err = a.admin.EnvironmentStatus(ctx)
	case 1:
		env, err = a.admin.SwitchEnvironment(ctx, args[0])
	default:
		return fmt.Errorf("%w, usage: env [sandbox|production]", errUsage)
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Environment: %s\n", orDash(env.Environment))
	return nil
}

func (a *App) Logs(ctx context.Context, args []string) error {
	level := ""
	if len(args) > 0 {
		level = args[0]
	}
	limit, err := optionalInt(args, 1, "limit")
	if err != nil {
		return err
	}

	entries, err := a.admin.Logs(ctx, level, limit)
	if err != nil {
		return err
	}
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{fmtTime(e.Timestamp), strings.ToUpper(e.Level), orDash(e.Source), e.Message})
	}
	table(a.out, []string{"TIME", "LEVEL", "SOURCE", "MESSAGE"}, rows)
	return nil
}

func (a *App) Companies(ctx context.Context, _ []string) error {
	companies, err := a.admin.Companies(ctx)
	if err != nil {
		return err
	}
	rows := make([][]string, 0, len(companies))
	for _, c := range companies {
		rows = append(rows, []string{c.ID.String(), c.Name, c.KRAPin, orDash(c.Status), strconv.Itoa(c.DeviceCount)})
	}
	table(a.out, []string{"ID", "NAME", "KRA PIN", "STATUS", "DEVICES"}, rows)
	return nil
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
