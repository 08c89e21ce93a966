package kubernetes

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes"

	"github.com/nebari-dev/aks-infrastructure-core/pkg/status"
)

const pollInterval = 5 * time.Second

// WaitForClusterReady waits for the cluster API to be responsive and at least
// one node to report Ready
func WaitForClusterReady(ctx context.Context, client kubernetes.Interface, timeout time.Duration) error {
	tracer := otel.Tracer("aks-infrastructure-core")
	ctx, span := tracer.Start(ctx, "kubernetes.WaitForClusterReady")
	defer span.End()

	span.SetAttributes(
		attribute.String("timeout", timeout.String()),
	)

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	status.Send(ctx, status.NewUpdate(status.LevelProgress, "Waiting for cluster to be ready").
		WithResource("cluster").
		WithAction("waiting"))

	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			err := fmt.Errorf("timeout waiting for cluster to be ready: %w", ctx.Err())
			span.RecordError(err)
			return err
		case <-ticker.C:
			// Check if API server responds
			if _, err := client.CoreV1().Nodes().List(ctx, metav1.ListOptions{Limit: 1}); err != nil {
				// API server not ready yet, continue waiting
				continue
			}

			if ready, err := isAnyNodeReady(ctx, client); err == nil && ready {
				status.Send(ctx, status.NewUpdate(status.LevelSuccess, "Cluster is ready").
					WithResource("cluster").
					WithAction("ready"))
				return nil
			}
		}
	}
}

// isAnyNodeReady checks if at least one node in the cluster is in Ready state
func isAnyNodeReady(ctx context.Context, client kubernetes.Interface) (bool, error) {
	nodes, err := client.CoreV1().Nodes().List(ctx, metav1.ListOptions{})
	if err != nil {
		return false, err
	}

	for _, node := range nodes.Items {
		for _, condition := range node.Status.Conditions {
			if condition.Type == corev1.NodeReady && condition.Status == corev1.ConditionTrue {
				return true, nil
			}
		}
	}

	return false, nil
}
